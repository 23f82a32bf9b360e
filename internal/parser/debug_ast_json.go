package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/andrewesterhuizen/js-engine/internal/ast"
)

// WalkAST recursively traverses an AST and serializes it into a map
// structure. Every node becomes `{"type": "<NodeTag>", ...}` with the node's
// own fields and children serialized recursively; this shape is part of the
// external debug contract.
func WalkAST(node ast.Node) interface{} {
	if node == nil || (reflect.ValueOf(node).Kind() == reflect.Ptr && reflect.ValueOf(node).IsNil()) {
		return nil
	}

	switch n := node.(type) {
	case *ast.Program:
		statements := make([]interface{}, len(n.Statements))
		for i, s := range n.Statements {
			statements[i] = WalkAST(s)
		}
		return map[string]interface{}{
			"type": "Program",
			"body": statements,
		}

	case *ast.ExpressionStatement:
		return map[string]interface{}{
			"type":       "ExpressionStatement",
			"expression": WalkAST(n.Expression),
		}

	case *ast.BlockStatement:
		statements := make([]interface{}, len(n.Statements))
		for i, s := range n.Statements {
			statements[i] = WalkAST(s)
		}
		return map[string]interface{}{
			"type": "BlockStatement",
			"body": statements,
		}

	case *ast.IfStatement:
		return map[string]interface{}{
			"type":        "IfStatement",
			"test":        WalkAST(n.Test),
			"consequent":  WalkAST(n.Consequent),
			"alternative": WalkAST(n.Alternative),
		}

	case *ast.WhileStatement:
		return map[string]interface{}{
			"type": "WhileStatement",
			"test": WalkAST(n.Test),
			"body": WalkAST(n.Body),
		}

	case *ast.ForStatement:
		return map[string]interface{}{
			"type":   "ForStatement",
			"init":   WalkAST(n.Init),
			"test":   WalkAST(n.Test),
			"update": WalkAST(n.Update),
			"body":   WalkAST(n.Body),
		}

	case *ast.FunctionDeclarationStatement:
		return map[string]interface{}{
			"type":       "FunctionDeclarationStatement",
			"identifier": n.Name.Value,
			"parameters": walkIdentifiers(n.Parameters),
			"body":       WalkAST(n.Body),
		}

	case *ast.ReturnStatement:
		return map[string]interface{}{
			"type":  "ReturnStatement",
			"value": WalkAST(n.ReturnValue),
		}

	case *ast.ThrowStatement:
		return map[string]interface{}{
			"type":  "ThrowStatement",
			"value": WalkAST(n.Value),
		}

	case *ast.TryCatchStatement:
		return map[string]interface{}{
			"type":       "TryCatchStatement",
			"tryBlock":   WalkAST(n.TryBlock),
			"catchParam": n.CatchParam.Value,
			"catchBlock": WalkAST(n.CatchBlock),
		}

	case *ast.Identifier:
		return map[string]interface{}{
			"type": "Identifier",
			"name": n.Value,
		}

	case *ast.NumberLiteral:
		return map[string]interface{}{
			"type":  "NumberLiteral",
			"value": n.Value,
		}

	case *ast.StringLiteral:
		return map[string]interface{}{
			"type":  "StringLiteral",
			"value": n.Value,
		}

	case *ast.BooleanLiteral:
		return map[string]interface{}{
			"type":  "BooleanLiteral",
			"value": n.Value,
		}

	case *ast.NullLiteral:
		return map[string]interface{}{
			"type": "NullLiteral",
		}

	case *ast.ThisExpression:
		return map[string]interface{}{
			"type": "ThisExpression",
		}

	case *ast.ArrayLiteral:
		elements := make([]interface{}, len(n.Elements))
		for i, el := range n.Elements {
			elements[i] = WalkAST(el)
		}
		return map[string]interface{}{
			"type":     "ArrayLiteral",
			"elements": elements,
		}

	case *ast.ObjectLiteral:
		type pair struct {
			Key   string      `json:"key"`
			Value interface{} `json:"value"`
		}
		pairs := make([]pair, 0, len(n.Properties))
		for _, prop := range n.Properties {
			pairs = append(pairs, pair{Key: prop.Key, Value: WalkAST(prop.Value)})
		}
		return map[string]interface{}{
			"type":       "ObjectLiteral",
			"properties": pairs,
		}

	case *ast.FunctionLiteral:
		return map[string]interface{}{
			"type":       "FunctionLiteral",
			"name":       n.Name,
			"parameters": walkIdentifiers(n.Parameters),
			"body":       WalkAST(n.Body),
		}

	case *ast.ArrowFunctionLiteral:
		return map[string]interface{}{
			"type":       "ArrowFunctionLiteral",
			"parameters": walkIdentifiers(n.Parameters),
			"body":       WalkAST(n.Body),
		}

	case *ast.VariableDeclaration:
		names := make([]interface{}, len(n.Names))
		for i, name := range n.Names {
			names[i] = name.Value
		}
		return map[string]interface{}{
			"type":  "VariableDeclaration",
			"kind":  n.Kind,
			"names": names,
			"value": WalkAST(n.Value),
		}

	case *ast.CallExpression:
		args := make([]interface{}, len(n.Arguments))
		for i, arg := range n.Arguments {
			args[i] = WalkAST(arg)
		}
		return map[string]interface{}{
			"type":      "CallExpression",
			"callee":    WalkAST(n.Callee),
			"arguments": args,
		}

	case *ast.NewExpression:
		args := make([]interface{}, len(n.Arguments))
		for i, arg := range n.Arguments {
			args[i] = WalkAST(arg)
		}
		return map[string]interface{}{
			"type":      "NewExpression",
			"callee":    WalkAST(n.Callee),
			"arguments": args,
		}

	case *ast.MemberExpression:
		return map[string]interface{}{
			"type":     "MemberExpression",
			"object":   WalkAST(n.Object),
			"property": WalkAST(n.Property),
			"computed": n.Computed,
		}

	case *ast.BinaryExpression:
		return map[string]interface{}{
			"type":     "BinaryExpression",
			"left":     WalkAST(n.Left),
			"operator": n.Operator.String(),
			"right":    WalkAST(n.Right),
		}

	case *ast.UnaryExpression:
		return map[string]interface{}{
			"type":     "UnaryExpression",
			"operator": n.Operator.String(),
			"operand":  WalkAST(n.Operand),
		}

	case *ast.UpdateExpression:
		return map[string]interface{}{
			"type":     "UpdateExpression",
			"operator": n.Operator.String(),
			"operand":  WalkAST(n.Operand),
			"prefix":   n.Prefix,
		}

	case *ast.AssignmentExpression:
		return map[string]interface{}{
			"type":     "AssignmentExpression",
			"operator": n.Operator.String(),
			"target":   WalkAST(n.Target),
			"value":    WalkAST(n.Value),
		}

	case *ast.TernaryExpression:
		return map[string]interface{}{
			"type":        "TernaryExpression",
			"test":        WalkAST(n.Test),
			"consequent":  WalkAST(n.Consequent),
			"alternative": WalkAST(n.Alternative),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
			"node": fmt.Sprintf("%T", n),
		}
	}
}

func walkIdentifiers(identifiers []*ast.Identifier) []interface{} {
	result := make([]interface{}, len(identifiers))
	for i, id := range identifiers {
		result[i] = id.Value
	}
	return result
}

func RenderASTAsJSON(node ast.Node) (string, error) {
	astMap := WalkAST(node)
	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(astMap); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %v", err)
	}
	return buf.String(), nil
}
