package evaluator

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/andrewesterhuizen/js-engine/internal/ast"
	"github.com/andrewesterhuizen/js-engine/internal/object"
)

// Evaluator walks a program AST against its own global environment and heap.
// A fresh instance is required per program.
type Evaluator struct {
	heap   *object.Heap
	scopes *object.ScopeStack
	global *object.Object

	out    io.Writer
	errOut io.Writer

	nextHandle int64
}

func New() *Evaluator {
	return NewWithOutput(os.Stdout, os.Stderr)
}

func NewWithOutput(out, errOut io.Writer) *Evaluator {
	e := &Evaluator{
		heap:   object.NewHeap(object.DefaultGCThreshold),
		out:    out,
		errOut: errOut,
	}

	e.global = &object.Object{}
	globalFrame := object.NewGlobalFrame(e.global, e.global)
	e.scopes = object.NewScopeStack(globalFrame)
	e.heap.SetRoots(e.scopes, e.global)

	e.installBuiltins()

	return e
}

func (e *Evaluator) Heap() *object.Heap { return e.heap }

func (e *Evaluator) GlobalObject() *object.Object { return e.global }

func (e *Evaluator) ScopeDepth() int { return e.scopes.Depth() }

// Run executes the program's statements in order. An uncaught thrown value
// is stringified through its toString and printed to the error stream; Run
// then returns normally.
func (e *Evaluator) Run(program *ast.Program) {
	result := e.Eval(program)
	if thrown, ok := result.(*object.ThrownValue); ok {
		fmt.Fprintln(e.errOut, "Uncaught "+e.stringify(thrown.Value))
	}
}

func (e *Evaluator) Eval(node ast.Node) object.Value {
	switch node := node.(type) {

	// Statements
	case *ast.Program:
		return e.evalProgram(node)

	case *ast.ExpressionStatement:
		return e.Eval(node.Expression)

	case *ast.BlockStatement:
		return e.evalBlockStatement(node)

	case *ast.IfStatement:
		return e.evalIfStatement(node)

	case *ast.WhileStatement:
		return e.evalWhileStatement(node)

	case *ast.ForStatement:
		return e.evalForStatement(node)

	case *ast.FunctionDeclarationStatement:
		fn := e.newUserFunction(node.Name.Value, node.Parameters, node.Body, false)
		e.scopes.Current().Define(node.Name.Value, fn)
		return e.undefined()

	case *ast.ReturnStatement:
		value := object.Value(e.undefined())
		if node.ReturnValue != nil {
			value = e.Eval(node.ReturnValue)
			if isCarrier(value) {
				return value
			}
		}
		return &object.ReturnValue{Value: value}

	case *ast.ThrowStatement:
		value := e.Eval(node.Value)
		if isCarrier(value) {
			return value
		}
		return &object.ThrownValue{Value: value}

	case *ast.TryCatchStatement:
		return e.evalTryCatchStatement(node)

	// Expressions
	case *ast.NumberLiteral:
		return e.heap.NewNumber(node.Value)

	case *ast.StringLiteral:
		return e.heap.NewString(node.Value)

	case *ast.BooleanLiteral:
		return e.heap.NewBoolean(node.Value)

	case *ast.NullLiteral:
		return e.heap.Null()

	case *ast.ThisExpression:
		return e.scopes.Current().This()

	case *ast.Identifier:
		return e.evalIdentifier(node)

	case *ast.ArrayLiteral:
		elements := e.evalExpressions(node.Elements)
		if len(elements) == 1 && isCarrier(elements[0]) {
			return elements[0]
		}
		return e.heap.NewArray(elements)

	case *ast.ObjectLiteral:
		obj := e.heap.NewObject()
		for _, prop := range node.Properties {
			value := e.Eval(prop.Value)
			if isCarrier(value) {
				return value
			}
			obj.SetProperty(prop.Key, value)
		}
		return obj

	case *ast.FunctionLiteral:
		return e.newUserFunction(node.Name, node.Parameters, node.Body, false)

	case *ast.ArrowFunctionLiteral:
		return e.newUserFunction("", node.Parameters, node.Body, true)

	case *ast.VariableDeclaration:
		return e.evalVariableDeclaration(node)

	case *ast.CallExpression:
		return e.evalCallExpression(node)

	case *ast.NewExpression:
		return e.evalNewExpression(node)

	case *ast.MemberExpression:
		return e.evalMemberExpression(node)

	case *ast.BinaryExpression:
		return e.evalBinaryExpression(node)

	case *ast.UnaryExpression:
		return e.evalUnaryExpression(node)

	case *ast.UpdateExpression:
		return e.evalUpdateExpression(node)

	case *ast.AssignmentExpression:
		return e.evalAssignmentExpression(node)

	case *ast.TernaryExpression:
		test := e.Eval(node.Test)
		if isCarrier(test) {
			return test
		}
		if object.IsTruthy(test) {
			return e.Eval(node.Consequent)
		}
		return e.Eval(node.Alternative)
	}

	slog.Error("unable to evaluate node", slog.String("node", fmt.Sprintf("%T", node)))
	return e.undefined()
}

func (e *Evaluator) evalProgram(program *ast.Program) object.Value {
	var result object.Value = e.undefined()

	for _, statement := range program.Statements {
		result = e.Eval(statement)

		switch result := result.(type) {
		case *object.ReturnValue:
			return result.Value
		case *object.ThrownValue:
			return result
		}
	}

	return result
}

// Blocks do not introduce scope frames; frames are pushed on function call
// and catch entry only.
func (e *Evaluator) evalBlockStatement(block *ast.BlockStatement) object.Value {
	var result object.Value = e.undefined()

	for _, statement := range block.Statements {
		result = e.Eval(statement)

		if isCarrier(result) {
			return result
		}
	}

	return result
}

func (e *Evaluator) evalIfStatement(node *ast.IfStatement) object.Value {
	test := e.Eval(node.Test)
	if isCarrier(test) {
		return test
	}

	if object.IsTruthy(test) {
		return e.Eval(node.Consequent)
	}
	if node.Alternative != nil {
		return e.Eval(node.Alternative)
	}

	return e.undefined()
}

func (e *Evaluator) evalWhileStatement(node *ast.WhileStatement) object.Value {
	for {
		test := e.Eval(node.Test)
		if isCarrier(test) {
			return test
		}
		if !object.IsTruthy(test) {
			return e.undefined()
		}

		result := e.Eval(node.Body)
		if isCarrier(result) {
			return result
		}
	}
}

func (e *Evaluator) evalForStatement(node *ast.ForStatement) object.Value {
	if init := e.Eval(node.Init); isCarrier(init) {
		return init
	}

	for {
		test := e.Eval(node.Test)
		if isCarrier(test) {
			return test
		}
		if !object.IsTruthy(test) {
			return e.undefined()
		}

		result := e.Eval(node.Body)
		if isCarrier(result) {
			return result
		}

		if update := e.Eval(node.Update); isCarrier(update) {
			return update
		}
	}
}

func (e *Evaluator) evalTryCatchStatement(node *ast.TryCatchStatement) object.Value {
	result := e.Eval(node.TryBlock)

	thrown, ok := result.(*object.ThrownValue)
	if !ok {
		// ReturnValue passes through try/catch untouched
		return result
	}

	current := e.scopes.Current()
	frame := object.NewFrame(current, current.This())
	frame.Define(node.CatchParam.Value, thrown.Value)

	e.scopes.Push(frame)
	result = e.Eval(node.CatchBlock)
	e.scopes.Pop()

	return result
}

func (e *Evaluator) evalIdentifier(node *ast.Identifier) object.Value {
	if value, ok := e.scopes.Current().Get(node.Value); ok {
		return value
	}
	return e.throwReferenceError("%s is not defined", node.Value)
}

func (e *Evaluator) evalVariableDeclaration(node *ast.VariableDeclaration) object.Value {
	frame := e.scopes.Current()

	for _, name := range node.Names {
		frame.Define(name.Value, e.undefined())
	}

	if node.Value == nil {
		return e.undefined()
	}

	value := e.Eval(node.Value)
	if isCarrier(value) {
		return value
	}

	// a single initializer binds the last declared name
	frame.Define(node.Names[len(node.Names)-1].Value, value)
	return value
}

func (e *Evaluator) evalCallExpression(node *ast.CallExpression) object.Value {
	var this object.Value = e.global
	var callee object.Value

	if member, ok := node.Callee.(*ast.MemberExpression); ok {
		obj := e.Eval(member.Object)
		if isCarrier(obj) {
			return obj
		}
		this = obj

		callee = e.resolveMember(obj, member)
		if isCarrier(callee) {
			return callee
		}
	} else {
		callee = e.Eval(node.Callee)
		if isCarrier(callee) {
			return callee
		}
	}

	fn, ok := callee.(*object.Function)
	if !ok {
		return e.throwTypeError("%s is not a function", calleeName(node.Callee))
	}

	args := e.evalExpressions(node.Arguments)
	if len(args) == 1 && isCarrier(args[0]) {
		return args[0]
	}

	return e.applyFunction(fn, this, args)
}

// calleeName renders the source form of a callee for "X is not a function"
// diagnostics.
func calleeName(callee ast.Expression) string {
	switch callee := callee.(type) {
	case *ast.Identifier:
		return callee.Value
	case *ast.MemberExpression:
		return callee.String()
	default:
		return callee.String()
	}
}

func (e *Evaluator) applyFunction(fn *object.Function, this object.Value, args []object.Value) object.Value {
	if fn.IsBuiltin() {
		return fn.Builtin(this, args)
	}

	frame := object.NewFrame(fn.Scope, this)
	e.scopes.Push(frame)
	defer e.scopes.Pop()

	for i, name := range fn.Parameters {
		if i < len(args) {
			frame.Define(name, args[i])
		} else {
			frame.Define(name, e.undefined())
		}
	}
	frame.Define("arguments", e.heap.NewArray(args))

	if fn.IsArrow {
		if expr, ok := fn.Body.(ast.Expression); ok {
			result := e.Eval(expr)
			if thrown, isThrown := result.(*object.ThrownValue); isThrown {
				return thrown
			}
			return result
		}
	}

	result := e.Eval(fn.Body)

	switch result := result.(type) {
	case *object.ReturnValue:
		return result.Value
	case *object.ThrownValue:
		return result
	}

	return e.undefined()
}

func (e *Evaluator) evalNewExpression(node *ast.NewExpression) object.Value {
	callee := e.Eval(node.Callee)
	if isCarrier(callee) {
		return callee
	}

	fn, ok := callee.(*object.Function)
	if !ok {
		return e.throwTypeError("%s is not a constructor", calleeName(node.Callee))
	}

	args := e.evalExpressions(node.Arguments)
	if len(args) == 1 && isCarrier(args[0]) {
		return args[0]
	}

	instance := e.heap.NewObject()
	if proto, ok := fn.OwnProperty("prototype"); ok {
		instance.SetProperty(object.ProtoKey, proto)
	}

	result := e.applyFunction(fn, instance, args)
	if isCarrier(result) {
		return result
	}

	// a constructor returning a value wins over the fresh instance
	if result.Type() != object.UNDEFINED_OBJ {
		return result
	}
	return instance
}

func (e *Evaluator) evalMemberExpression(node *ast.MemberExpression) object.Value {
	obj := e.Eval(node.Object)
	if isCarrier(obj) {
		return obj
	}
	return e.resolveMember(obj, node)
}

func (e *Evaluator) resolveMember(obj object.Value, node *ast.MemberExpression) object.Value {
	switch obj.Type() {
	case object.UNDEFINED_OBJ, object.NULL_OBJ:
		return e.throwTypeError("cannot read properties of %s (reading %q)", obj.Inspect(), memberName(node))
	}

	if node.Computed {
		key := e.Eval(node.Property)
		if isCarrier(key) {
			return key
		}

		if arr, isArray := obj.(*object.Array); isArray {
			if index, isNumber := key.(*object.Number); isNumber {
				i := int(index.Value)
				if i < 0 || i >= len(arr.Elements) {
					return e.undefined()
				}
				return arr.Elements[i]
			}
		}

		return e.lookupProperty(obj, e.stringify(key))
	}

	return e.lookupProperty(obj, node.Property.(*ast.Identifier).Value)
}

func memberName(node *ast.MemberExpression) string {
	if !node.Computed {
		return node.Property.(*ast.Identifier).Value
	}
	return node.Property.String()
}

func (e *Evaluator) lookupProperty(obj object.Value, name string) object.Value {
	if name == "length" {
		switch obj := obj.(type) {
		case *object.Array:
			return e.heap.NewNumber(float64(len(obj.Elements)))
		case *object.String:
			return e.heap.NewNumber(float64(len(obj.Value)))
		}
	}

	if value, ok := object.GetProperty(obj, name); ok {
		return value
	}
	return e.undefined()
}

func (e *Evaluator) evalBinaryExpression(node *ast.BinaryExpression) object.Value {
	// logical operators short-circuit before the right side evaluates
	switch node.Operator {
	case ast.OperatorLogicalAnd:
		left := e.Eval(node.Left)
		if isCarrier(left) {
			return left
		}
		if !object.IsTruthy(left) {
			return e.heap.NewBoolean(false)
		}
		right := e.Eval(node.Right)
		if isCarrier(right) {
			return right
		}
		return e.heap.NewBoolean(object.IsTruthy(right))

	case ast.OperatorLogicalOr:
		left := e.Eval(node.Left)
		if isCarrier(left) {
			return left
		}
		if object.IsTruthy(left) {
			return e.heap.NewBoolean(true)
		}
		right := e.Eval(node.Right)
		if isCarrier(right) {
			return right
		}
		return e.heap.NewBoolean(object.IsTruthy(right))
	}

	left := e.Eval(node.Left)
	if isCarrier(left) {
		return left
	}
	right := e.Eval(node.Right)
	if isCarrier(right) {
		return right
	}

	return e.evalBinaryOperator(node.Operator, left, right)
}

func (e *Evaluator) evalBinaryOperator(op ast.Operator, left, right object.Value) object.Value {
	switch op {
	case ast.OperatorAdd:
		_, leftIsString := left.(*object.String)
		_, rightIsString := right.(*object.String)
		if leftIsString || rightIsString {
			return e.heap.NewString(e.stringify(left) + e.stringify(right))
		}
		return e.numericOperator(op, left, right)

	case ast.OperatorSubtract, ast.OperatorMultiply, ast.OperatorDivide,
		ast.OperatorModulo, ast.OperatorExponent:
		return e.numericOperator(op, left, right)

	case ast.OperatorLessThan, ast.OperatorLessThanOrEqual,
		ast.OperatorGreaterThan, ast.OperatorGreaterThanOrEqual:
		return e.comparisonOperator(op, left, right)

	case ast.OperatorEqual:
		return e.heap.NewBoolean(e.valuesEqual(left, right))
	case ast.OperatorNotEqual:
		return e.heap.NewBoolean(!e.valuesEqual(left, right))
	case ast.OperatorEqualStrict:
		return e.heap.NewBoolean(e.valuesEqualStrict(left, right))
	case ast.OperatorNotEqualStrict:
		return e.heap.NewBoolean(!e.valuesEqualStrict(left, right))

	case ast.OperatorBitwiseAnd, ast.OperatorBitwiseOr:
		leftNum, leftOk := left.(*object.Number)
		rightNum, rightOk := right.(*object.Number)
		if !leftOk || !rightOk {
			return e.throwTypeError("unsupported operand types for %s: %s and %s", op, left.Type(), right.Type())
		}
		if op == ast.OperatorBitwiseAnd {
			return e.heap.NewNumber(float64(int64(leftNum.Value) & int64(rightNum.Value)))
		}
		return e.heap.NewNumber(float64(int64(leftNum.Value) | int64(rightNum.Value)))
	}

	return e.throwTypeError("unsupported binary operator %s", op)
}

func (e *Evaluator) numericOperator(op ast.Operator, left, right object.Value) object.Value {
	leftNum, leftOk := left.(*object.Number)
	rightNum, rightOk := right.(*object.Number)
	if !leftOk || !rightOk {
		return e.throwTypeError("unsupported operand types for %s: %s and %s", op, left.Type(), right.Type())
	}

	l, r := leftNum.Value, rightNum.Value

	switch op {
	case ast.OperatorAdd:
		return e.heap.NewNumber(l + r)
	case ast.OperatorSubtract:
		return e.heap.NewNumber(l - r)
	case ast.OperatorMultiply:
		return e.heap.NewNumber(l * r)
	case ast.OperatorDivide:
		// IEEE-754: division by zero yields an infinity, not an error
		return e.heap.NewNumber(l / r)
	case ast.OperatorModulo:
		return e.heap.NewNumber(math.Mod(l, r))
	case ast.OperatorExponent:
		return e.heap.NewNumber(math.Pow(l, r))
	}

	return e.throwTypeError("unsupported numeric operator %s", op)
}

// comparisonOperator compares numerically when both sides are Numbers and
// falls back to comparing truthiness (as 0/1) otherwise.
func (e *Evaluator) comparisonOperator(op ast.Operator, left, right object.Value) object.Value {
	var l, r float64

	leftNum, leftOk := left.(*object.Number)
	rightNum, rightOk := right.(*object.Number)
	if leftOk && rightOk {
		l, r = leftNum.Value, rightNum.Value
	} else {
		if object.IsTruthy(left) {
			l = 1
		}
		if object.IsTruthy(right) {
			r = 1
		}
	}

	switch op {
	case ast.OperatorLessThan:
		return e.heap.NewBoolean(l < r)
	case ast.OperatorLessThanOrEqual:
		return e.heap.NewBoolean(l <= r)
	case ast.OperatorGreaterThan:
		return e.heap.NewBoolean(l > r)
	case ast.OperatorGreaterThanOrEqual:
		return e.heap.NewBoolean(l >= r)
	}

	return e.throwTypeError("unsupported comparison operator %s", op)
}

func (e *Evaluator) valuesEqual(left, right object.Value) bool {
	if leftNum, ok := left.(*object.Number); ok {
		if rightNum, ok := right.(*object.Number); ok {
			return leftNum.Value == rightNum.Value
		}
	}
	if leftStr, ok := left.(*object.String); ok {
		if rightStr, ok := right.(*object.String); ok {
			return leftStr.Value == rightStr.Value
		}
	}
	if left == right {
		return true
	}
	return object.IsTruthy(left) == object.IsTruthy(right)
}

func (e *Evaluator) valuesEqualStrict(left, right object.Value) bool {
	if left.Type() != right.Type() {
		return false
	}
	return e.valuesEqual(left, right)
}

func (e *Evaluator) evalUnaryExpression(node *ast.UnaryExpression) object.Value {
	switch node.Operator {
	case ast.OperatorTypeof:
		operand := e.Eval(node.Operand)
		if isCarrier(operand) {
			return operand
		}
		return e.heap.NewString(typeOf(operand))

	case ast.OperatorNot:
		operand := e.Eval(node.Operand)
		if isCarrier(operand) {
			return operand
		}
		return e.heap.NewBoolean(!object.IsTruthy(operand))

	case ast.OperatorSubtract:
		operand := e.Eval(node.Operand)
		if isCarrier(operand) {
			return operand
		}
		num, ok := operand.(*object.Number)
		if !ok {
			return e.throwTypeError("unsupported operand type for unary -: %s", operand.Type())
		}
		return e.heap.NewNumber(-num.Value)
	}

	return e.throwTypeError("unsupported unary operator %s", node.Operator)
}

func typeOf(v object.Value) string {
	switch v.Type() {
	case object.UNDEFINED_OBJ:
		return "undefined"
	case object.BOOLEAN_OBJ:
		return "boolean"
	case object.NUMBER_OBJ:
		return "number"
	case object.STRING_OBJ:
		return "string"
	case object.FUNCTION_OBJ:
		return "function"
	default:
		// null, objects, and arrays all report "object"
		return "object"
	}
}

func (e *Evaluator) evalUpdateExpression(node *ast.UpdateExpression) object.Value {
	old := e.Eval(node.Operand)
	if isCarrier(old) {
		return old
	}

	num, ok := old.(*object.Number)
	if !ok {
		return e.throwTypeError("%s requires a numeric operand, got %s", node.Operator, old.Type())
	}

	delta := 1.0
	if node.Operator == ast.OperatorDecrement {
		delta = -1
	}
	updated := e.heap.NewNumber(num.Value + delta)

	if result := e.storeToTarget(node.Operand, updated); isCarrier(result) {
		return result
	}

	if node.Prefix {
		return updated
	}
	return old
}

func (e *Evaluator) evalAssignmentExpression(node *ast.AssignmentExpression) object.Value {
	value := e.Eval(node.Value)
	if isCarrier(value) {
		return value
	}

	if node.Operator != ast.OperatorAssign {
		current := e.Eval(node.Target)
		if isCarrier(current) {
			return current
		}

		var op ast.Operator
		switch node.Operator {
		case ast.OperatorAddAssign:
			op = ast.OperatorAdd
		case ast.OperatorSubtractAssign:
			op = ast.OperatorSubtract
		case ast.OperatorMultiplyAssign:
			op = ast.OperatorMultiply
		case ast.OperatorDivideAssign:
			op = ast.OperatorDivide
		default:
			return e.throwTypeError("unsupported assignment operator %s", node.Operator)
		}

		value = e.evalBinaryOperator(op, current, value)
		if isCarrier(value) {
			return value
		}
	}

	if result := e.storeToTarget(node.Target, value); isCarrier(result) {
		return result
	}
	return value
}

// storeToTarget writes value into an lvalue: an identifier, a dot member, or
// a computed member. An undeclared identifier assignment lands on the global
// frame.
func (e *Evaluator) storeToTarget(target ast.Expression, value object.Value) object.Value {
	switch target := target.(type) {
	case *ast.Identifier:
		if !e.scopes.Current().Assign(target.Value, value) {
			e.scopes.Global().Define(target.Value, value)
		}
		return value

	case *ast.MemberExpression:
		obj := e.Eval(target.Object)
		if isCarrier(obj) {
			return obj
		}

		switch obj.Type() {
		case object.UNDEFINED_OBJ, object.NULL_OBJ:
			return e.throwTypeError("cannot set properties of %s (setting %q)", obj.Inspect(), memberName(target))
		}

		if target.Computed {
			key := e.Eval(target.Property)
			if isCarrier(key) {
				return key
			}

			if arr, isArray := obj.(*object.Array); isArray {
				if index, isNumber := key.(*object.Number); isNumber {
					i := int(index.Value)
					if i < 0 {
						return e.throwTypeError("invalid array index %s", index.Inspect())
					}
					for len(arr.Elements) <= i {
						arr.Elements = append(arr.Elements, e.undefined())
					}
					arr.Elements[i] = value
					return value
				}
			}

			obj.SetProperty(e.stringify(key), value)
			return value
		}

		obj.SetProperty(target.Property.(*ast.Identifier).Value, value)
		return value
	}

	return e.throwTypeError("invalid assignment target %s", target.String())
}

func (e *Evaluator) evalExpressions(expressions []ast.Expression) []object.Value {
	var result []object.Value

	for _, expression := range expressions {
		evaluated := e.Eval(expression)
		if isCarrier(evaluated) {
			return []object.Value{evaluated}
		}
		result = append(result, evaluated)
	}

	return result
}

func (e *Evaluator) newUserFunction(name string, parameters []*ast.Identifier, body ast.Node, isArrow bool) *object.Function {
	fn := e.heap.NewFunction(name)

	names := make([]string, len(parameters))
	for i, p := range parameters {
		names[i] = p.Value
	}

	fn.Parameters = names
	fn.Body = body
	fn.IsArrow = isArrow
	fn.Scope = e.scopes.Current()

	return fn
}

func (e *Evaluator) undefined() *object.Undefined {
	return e.heap.Undefined()
}

func isCarrier(v object.Value) bool {
	switch v.(type) {
	case *object.ReturnValue, *object.ThrownValue:
		return true
	}
	return false
}

// stringify converts a value to its string form through the value's own
// toString when the prototype chain supplies one.
func (e *Evaluator) stringify(v object.Value) string {
	if toString, ok := object.GetProperty(v, "toString"); ok {
		if fn, isFn := toString.(*object.Function); isFn {
			result := e.applyFunction(fn, v, nil)
			if s, isString := result.(*object.String); isString {
				return s.Value
			}
		}
	}
	return object.DefaultToString(v)
}

func (e *Evaluator) newErrorValue(name, format string, args ...interface{}) *object.Object {
	err := e.heap.NewObject()
	if proto := e.errorPrototype(); proto != nil {
		err.SetProperty(object.ProtoKey, proto)
	}
	err.SetProperty("name", e.heap.NewString(name))
	err.SetProperty("message", e.heap.NewString(fmt.Sprintf(format, args...)))
	return err
}

func (e *Evaluator) errorPrototype() object.Value {
	ctor, ok := e.global.OwnProperty("Error")
	if !ok {
		return nil
	}
	proto, ok := ctor.OwnProperty("prototype")
	if !ok {
		return nil
	}
	return proto
}

func (e *Evaluator) throwError(format string, args ...interface{}) object.Value {
	return &object.ThrownValue{Value: e.newErrorValue("Error", format, args...)}
}

func (e *Evaluator) throwTypeError(format string, args ...interface{}) object.Value {
	return &object.ThrownValue{Value: e.newErrorValue("TypeError", format, args...)}
}

func (e *Evaluator) throwReferenceError(format string, args ...interface{}) object.Value {
	return &object.ThrownValue{Value: e.newErrorValue("ReferenceError", format, args...)}
}

func (e *Evaluator) argAt(args []object.Value, i int) object.Value {
	if i < len(args) {
		return args[i]
	}
	return e.undefined()
}

func joinInspect(args []object.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.Inspect()
	}
	return strings.Join(parts, " ")
}
