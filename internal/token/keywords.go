package token

var keywords = map[string]Kind{
	"abstract":   KwAbstract,
	"as":         KwAs,
	"base":       KwBase,
	"bool":       KwBool,
	"break":      KwBreak,
	"byte":       KwByte,
	"case":       KwCase,
	"catch":      KwCatch,
	"char":       KwChar,
	"checked":    KwChecked,
	"class":      KwClass,
	"const":      KwConst,
	"continue":   KwContinue,
	"decimal":    KwDecimal,
	"default":    KwDefault,
	"delegate":   KwDelegate,
	"do":         KwDo,
	"double":     KwDouble,
	"else":       KwElse,
	"enum":       KwEnum,
	"event":      KwEvent,
	"explicit":   KwExplicit,
	"extern":     KwExtern,
	"false":      KwFalse,
	"finally":    KwFinally,
	"fixed":      KwFixed,
	"float":      KwFloat,
	"for":        KwFor,
	"foreach":    KwForeach,
	"goto":       KwGoto,
	"if":         KwIf,
	"implicit":   KwImplicit,
	"in":         KwIn,
	"int":        KwInt,
	"interface":  KwInterface,
	"internal":   KwInternal,
	"is":         KwIs,
	"lock":       KwLock,
	"long":       KwLong,
	"namespace":  KwNamespace,
	"new":        KwNew,
	"null":       KwNull,
	"object":     KwObject,
	"operator":   KwOperator,
	"out":        KwOut,
	"override":   KwOverride,
	"params":     KwParams,
	"private":    KwPrivate,
	"protected":  KwProtected,
	"public":     KwPublic,
	"readonly":   KwReadonly,
	"ref":        KwRef,
	"return":     KwReturn,
	"sbyte":      KwSbyte,
	"sealed":     KwSealed,
	"short":      KwShort,
	"sizeof":     KwSizeof,
	"stackalloc": KwStackalloc,
	"static":     KwStatic,
	"string":     KwString,
	"struct":     KwStruct,
	"switch":     KwSwitch,
	"this":       KwThis,
	"throw":      KwThrow,
	"true":       KwTrue,
	"try":        KwTry,
	"typeof":     KwTypeof,
	"uint":       KwUint,
	"ulong":      KwUlong,
	"unchecked":  KwUnchecked,
	"unsafe":     KwUnsafe,
	"ushort":     KwUshort,
	"using":      KwUsing,
	"virtual":    KwVirtual,
	"void":       KwVoid,
	"volatile":   KwVolatile,
	"while":      KwWhile,
}

// LookupKeyword returns the kind for a reserved keyword.
// Keywords are case sensitive and contextual keywords are not reserved.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
