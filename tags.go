// Copyright 2024 The javaclass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package javaclass

// Constant pool tags (JVMS Table 4.4-A).
const (
	TagClass              uint8 = 7
	TagFieldRef           uint8 = 9
	TagMethodRef          uint8 = 10
	TagInterfaceMethodRef uint8 = 11
	TagString             uint8 = 8
	TagInteger            uint8 = 3
	TagFloat              uint8 = 4
	TagLong               uint8 = 5
	TagDouble             uint8 = 6
	TagNameAndType        uint8 = 12
	TagUTF8               uint8 = 1
	TagMethodHandle       uint8 = 15
	TagMethodType         uint8 = 16
	TagDynamic            uint8 = 17
	TagInvokeDynamic      uint8 = 18
	TagModule             uint8 = 19
	TagPackage            uint8 = 20
)

// Class, field and method access flag bits (JVMS Table 4.1-A and friends).
const (
	AccPublic       uint16 = 0x0001
	AccPrivate      uint16 = 0x0002
	AccProtected    uint16 = 0x0004
	AccStatic       uint16 = 0x0008
	AccFinal        uint16 = 0x0010
	AccSuper        uint16 = 0x0020 // classes
	AccSynchronized uint16 = 0x0020 // methods
	AccOpen         uint16 = 0x0020 // modules
	AccVolatile     uint16 = 0x0040
	AccBridge       uint16 = 0x0040
	AccTransitive   uint16 = 0x0020
	AccStaticPhase  uint16 = 0x0040
	AccVarargs      uint16 = 0x0080
	AccTransient    uint16 = 0x0080
	AccNative       uint16 = 0x0100
	AccInterface    uint16 = 0x0200
	AccAbstract     uint16 = 0x0400
	AccStrict       uint16 = 0x0800
	AccSynthetic    uint16 = 0x1000
	AccAnnotation   uint16 = 0x2000
	AccEnum         uint16 = 0x4000
	AccMandated     uint16 = 0x8000
	AccModule       uint16 = 0x8000
)

// ClassFileMagic is the fixed 4-byte prefix every class file begins with.
const ClassFileMagic uint32 = 0xCAFEBABE

// MethodHandle reference kinds (JVMS Table 5.4.3.5-A).
const (
	RefGetField         uint8 = 1
	RefGetStatic        uint8 = 2
	RefPutField         uint8 = 3
	RefPutStatic        uint8 = 4
	RefInvokeVirtual    uint8 = 5
	RefInvokeStatic     uint8 = 6
	RefInvokeSpecial    uint8 = 7
	RefNewInvokeSpecial uint8 = 8
	RefInvokeInterface  uint8 = 9
)

// VerificationTypeInfo tags (JVMS 4.7.4).
const (
	VerifyTop               uint8 = 0
	VerifyInteger           uint8 = 1
	VerifyFloat             uint8 = 2
	VerifyDouble            uint8 = 3
	VerifyLong              uint8 = 4
	VerifyNull              uint8 = 5
	VerifyUninitializedThis uint8 = 6
	VerifyObject            uint8 = 7
	VerifyUninitialized     uint8 = 8
)

// StackMapFrame tag boundaries (JVMS 4.7.4).
const (
	FrameSameMax                  uint8 = 63
	FrameSameLocals1StackMin      uint8 = 64
	FrameSameLocals1StackMax      uint8 = 127
	FrameReservedMin              uint8 = 128
	FrameReservedMax              uint8 = 246
	FrameSameLocals1StackExtended uint8 = 247
	FrameChopMin                  uint8 = 248
	FrameChopMax                  uint8 = 250
	FrameSameExtended             uint8 = 251
	FrameAppendMin                uint8 = 252
	FrameAppendMax                uint8 = 254
	FrameFull                     uint8 = 255
)

// Element value kind bytes (JVMS 4.7.16.1).
const (
	ElemByte       = 'B'
	ElemChar       = 'C'
	ElemDouble     = 'D'
	ElemFloat      = 'F'
	ElemInt        = 'I'
	ElemLong       = 'J'
	ElemShort      = 'S'
	ElemBoolean    = 'Z'
	ElemString     = 's'
	ElemEnum       = 'e'
	ElemClass      = 'c'
	ElemAnnotation = '@'
	ElemArray      = '['
)

// Attribute names (JVMS Table 4.7-C).
const (
	AttrConstantValue                        = "ConstantValue"
	AttrCode                                 = "Code"
	AttrStackMapTable                        = "StackMapTable"
	AttrExceptions                           = "Exceptions"
	AttrInnerClasses                         = "InnerClasses"
	AttrEnclosingMethod                      = "EnclosingMethod"
	AttrSynthetic                            = "Synthetic"
	AttrSignature                            = "Signature"
	AttrSourceFile                           = "SourceFile"
	AttrSourceDebugExtension                 = "SourceDebugExtension"
	AttrLineNumberTable                      = "LineNumberTable"
	AttrLocalVariableTable                   = "LocalVariableTable"
	AttrLocalVariableTypeTable                = "LocalVariableTypeTable"
	AttrDeprecated                           = "Deprecated"
	AttrRuntimeVisibleAnnotations            = "RuntimeVisibleAnnotations"
	AttrRuntimeInvisibleAnnotations          = "RuntimeInvisibleAnnotations"
	AttrRuntimeVisibleParameterAnnotations   = "RuntimeVisibleParameterAnnotations"
	AttrRuntimeInvisibleParameterAnnotations = "RuntimeInvisibleParameterAnnotations"
	AttrRuntimeVisibleTypeAnnotations        = "RuntimeVisibleTypeAnnotations"
	AttrRuntimeInvisibleTypeAnnotations      = "RuntimeInvisibleTypeAnnotations"
	AttrAnnotationDefault                    = "AnnotationDefault"
	AttrBootstrapMethods                     = "BootstrapMethods"
	AttrMethodParameters                     = "MethodParameters"
	AttrModule                               = "Module"
	AttrModulePackages                       = "ModulePackages"
	AttrModuleMainClass                      = "ModuleMainClass"
	AttrNestHost                             = "NestHost"
	AttrNestMembers                          = "NestMembers"
)
