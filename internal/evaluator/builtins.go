package evaluator

import (
	"fmt"

	"github.com/andrewesterhuizen/js-engine/internal/object"
)

// installBuiltins wires the global environment: host prototypes for the core
// kinds, console, Math, the Array constructor and prototype methods, the
// Error family, parseInt/parseFloat, and the host db namespace.
func (e *Evaluator) installBuiltins() {
	objectProto := e.heap.NewObject()
	e.heap.SetPrototype(object.OBJECT_OBJ, objectProto)

	functionProto := e.heap.NewObject()
	e.heap.SetPrototype(object.FUNCTION_OBJ, functionProto)

	objectProto.SetProperty("toString", e.newBuiltin("toString", func(this object.Value, args []object.Value) object.Value {
		return e.heap.NewString(object.DefaultToString(this))
	}))

	e.global.SetProperty("undefined", e.heap.Undefined())
	e.global.SetProperty("Object", objectProto)

	for _, host := range []struct {
		name string
		kind object.ValueType
	}{
		{"String", object.STRING_OBJ},
		{"Number", object.NUMBER_OBJ},
		{"Boolean", object.BOOLEAN_OBJ},
	} {
		proto := e.heap.NewObject()
		proto.SetProperty("toString", e.newBuiltin("toString", func(this object.Value, args []object.Value) object.Value {
			return e.heap.NewString(object.DefaultToString(this))
		}))
		e.heap.SetPrototype(host.kind, proto)
		e.global.SetProperty(host.name, proto)
	}

	e.installConsole()
	e.installMath()
	e.installArray()
	e.installErrors()
	e.installDB()

	e.global.SetProperty("parseInt", e.newBuiltin("parseInt", e.builtinParseInt))
	e.global.SetProperty("parseFloat", e.newBuiltin("parseFloat", e.builtinParseFloat))
}

// newBuiltin wraps a native handler in a Function value.
func (e *Evaluator) newBuiltin(name string, fn object.BuiltinFunction) *object.Function {
	builtin := e.heap.NewFunction(name)
	builtin.Builtin = fn
	return builtin
}

func (e *Evaluator) installConsole() {
	console := e.heap.NewObject()

	console.SetProperty("log", e.newBuiltin("log", func(this object.Value, args []object.Value) object.Value {
		fmt.Fprintln(e.out, joinInspect(args))
		return e.undefined()
	}))

	console.SetProperty("error", e.newBuiltin("error", func(this object.Value, args []object.Value) object.Value {
		fmt.Fprintln(e.errOut, joinInspect(args))
		return e.undefined()
	}))

	e.global.SetProperty("console", console)
}

func (e *Evaluator) installErrors() {
	errorCtor := e.newBuiltin("Error", e.errorConstructor("Error"))
	errorProto, _ := errorCtor.OwnProperty("prototype")

	errorProto.SetProperty("toString", e.newBuiltin("toString", func(this object.Value, args []object.Value) object.Value {
		name := "Error"
		if v, ok := object.GetProperty(this, "name"); ok {
			name = object.DefaultToString(v)
		}
		message := ""
		if v, ok := object.GetProperty(this, "message"); ok {
			message = object.DefaultToString(v)
		}
		if message == "" {
			return e.heap.NewString(name)
		}
		return e.heap.NewString(name + ": " + message)
	}))

	e.global.SetProperty("Error", errorCtor)

	for _, name := range []string{"ReferenceError", "TypeError"} {
		ctor := e.newBuiltin(name, e.errorConstructor(name))
		// the error subtypes share Error's prototype, and with it toString
		ctor.SetProperty("prototype", errorProto)
		e.global.SetProperty(name, ctor)
	}
}

// errorConstructor builds the native handler shared by the Error family:
// invoked via `new` it initializes the fresh instance, invoked directly it
// allocates and returns a new error object.
func (e *Evaluator) errorConstructor(name string) object.BuiltinFunction {
	return func(this object.Value, args []object.Value) object.Value {
		message := ""
		if len(args) > 0 && args[0].Type() != object.UNDEFINED_OBJ {
			message = e.stringify(args[0])
		}

		if target, ok := this.(*object.Object); ok && target != e.global {
			target.SetProperty("name", e.heap.NewString(name))
			target.SetProperty("message", e.heap.NewString(message))
			return e.undefined()
		}

		err := e.newErrorValue(name, "%s", message)
		return err
	}
}
