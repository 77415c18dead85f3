package syntax

import "strconv"

// NodeKind classifies syntax nodes.
type NodeKind uint8

const (
	NodeInvalid NodeKind = iota

	NodeCompilationUnit
	NodeUsingDirective
	NodeExternAlias
	NodeAttributeList
	NodeNamespace
	NodeFileScopedNamespace

	// type declarations
	NodeClass
	NodeStruct
	NodeRecord
	NodeInterface
	NodeEnum
	NodeDelegate

	// members
	NodeMethod
	NodeConstructor
	NodeProperty
	NodeAccessor
	NodeField
	NodeOtherMember

	// statements
	NodeBlock
	NodeLocalDeclaration
	NodeLocalFunction
	NodeExpressionStatement
	NodeIf
	NodeElse
	NodeWhile
	NodeDo
	NodeFor
	NodeForeach
	NodeSwitch
	NodeSwitchSection
	NodeTry
	NodeCatch
	NodeFinally
	NodeLock
	NodeUsingStatement
	NodeFixed
	NodeChecked
	NodeUnsafe
	NodeLabeled
	NodeOtherStatement

	// declaration pieces
	NodeVariableDeclaration
	NodeType
	NodeVariableDeclarator
	NodeEqualsValue

	// expressions
	NodeObjectCreation
	NodeImplicitObjectCreation
	NodeArgumentList
	NodeInitializer
	NodeExpression
	NodeLambdaBody

	nodeKindCount
)

var nodeKindNames = [nodeKindCount]string{
	NodeInvalid:                "Invalid",
	NodeCompilationUnit:        "CompilationUnit",
	NodeUsingDirective:         "UsingDirective",
	NodeExternAlias:            "ExternAlias",
	NodeAttributeList:          "AttributeList",
	NodeNamespace:              "Namespace",
	NodeFileScopedNamespace:    "FileScopedNamespace",
	NodeClass:                  "Class",
	NodeStruct:                 "Struct",
	NodeRecord:                 "Record",
	NodeInterface:              "Interface",
	NodeEnum:                   "Enum",
	NodeDelegate:               "Delegate",
	NodeMethod:                 "Method",
	NodeConstructor:            "Constructor",
	NodeProperty:               "Property",
	NodeAccessor:               "Accessor",
	NodeField:                  "Field",
	NodeOtherMember:            "OtherMember",
	NodeBlock:                  "Block",
	NodeLocalDeclaration:       "LocalDeclaration",
	NodeLocalFunction:          "LocalFunction",
	NodeExpressionStatement:    "ExpressionStatement",
	NodeIf:                     "If",
	NodeElse:                   "Else",
	NodeWhile:                  "While",
	NodeDo:                     "Do",
	NodeFor:                    "For",
	NodeForeach:                "Foreach",
	NodeSwitch:                 "Switch",
	NodeSwitchSection:          "SwitchSection",
	NodeTry:                    "Try",
	NodeCatch:                  "Catch",
	NodeFinally:                "Finally",
	NodeLock:                   "Lock",
	NodeUsingStatement:         "UsingStatement",
	NodeFixed:                  "Fixed",
	NodeChecked:                "Checked",
	NodeUnsafe:                 "Unsafe",
	NodeLabeled:                "Labeled",
	NodeOtherStatement:         "OtherStatement",
	NodeVariableDeclaration:    "VariableDeclaration",
	NodeType:                   "Type",
	NodeVariableDeclarator:     "VariableDeclarator",
	NodeEqualsValue:            "EqualsValue",
	NodeObjectCreation:         "ObjectCreation",
	NodeImplicitObjectCreation: "ImplicitObjectCreation",
	NodeArgumentList:           "ArgumentList",
	NodeInitializer:            "Initializer",
	NodeExpression:             "Expression",
	NodeLambdaBody:             "LambdaBody",
}

func (k NodeKind) String() string {
	if k < nodeKindCount && nodeKindNames[k] != "" {
		return nodeKindNames[k]
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// IsTypeDeclaration reports whether k declares a named type.
func (k NodeKind) IsTypeDeclaration() bool {
	switch k {
	case NodeClass, NodeStruct, NodeRecord, NodeInterface, NodeEnum, NodeDelegate:
		return true
	}
	return false
}

// CanHoldFields reports whether a type of kind k can receive instance fields
// and a parameterless constructor.
func (k NodeKind) CanHoldFields() bool {
	return k == NodeClass || k == NodeStruct || k == NodeRecord
}
