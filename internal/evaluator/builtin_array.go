package evaluator

import (
	"github.com/andrewesterhuizen/js-engine/internal/object"
)

func (e *Evaluator) installArray() {
	arrayProto := e.heap.NewObject()

	ctor := e.newBuiltin("Array", func(this object.Value, args []object.Value) object.Value {
		if len(args) == 0 {
			return e.heap.NewArray(nil)
		}

		length, ok := args[0].(*object.Number)
		if !ok || len(args) > 1 {
			// Array(a, b, ...) builds an array of its arguments
			return e.heap.NewArray(args)
		}

		elements := make([]object.Value, int(length.Value))
		for i := range elements {
			elements[i] = e.undefined()
		}
		return e.heap.NewArray(elements)
	})

	ctor.SetProperty("prototype", arrayProto)
	arrayProto.SetProperty("constructor", ctor)

	ctor.SetProperty("from", e.newBuiltin("from", func(this object.Value, args []object.Value) object.Value {
		src, ok := e.argAt(args, 0).(*object.Array)
		if !ok {
			return e.throwTypeError("Array.from expects an array")
		}

		elements := make([]object.Value, len(src.Elements))
		copy(elements, src.Elements)

		if mapFn, hasMap := e.argAt(args, 1).(*object.Function); hasMap {
			for i, el := range elements {
				result := e.applyFunction(mapFn, e.global, []object.Value{el, e.heap.NewNumber(float64(i))})
				if isCarrier(result) {
					return result
				}
				elements[i] = result
			}
		}

		return e.heap.NewArray(elements)
	}))

	arrayProto.SetProperty("push", e.newBuiltin("push", func(this object.Value, args []object.Value) object.Value {
		arr, ok := this.(*object.Array)
		if !ok {
			return e.throwTypeError("push called on non-array")
		}
		arr.Elements = append(arr.Elements, args...)
		return e.heap.NewNumber(float64(len(arr.Elements)))
	}))

	arrayProto.SetProperty("pop", e.newBuiltin("pop", func(this object.Value, args []object.Value) object.Value {
		arr, ok := this.(*object.Array)
		if !ok {
			return e.throwTypeError("pop called on non-array")
		}
		if len(arr.Elements) == 0 {
			return e.undefined()
		}
		last := arr.Elements[len(arr.Elements)-1]
		arr.Elements = arr.Elements[:len(arr.Elements)-1]
		return last
	}))

	arrayProto.SetProperty("fill", e.newBuiltin("fill", func(this object.Value, args []object.Value) object.Value {
		arr, ok := this.(*object.Array)
		if !ok {
			return e.throwTypeError("fill called on non-array")
		}
		value := e.argAt(args, 0)
		for i := range arr.Elements {
			arr.Elements[i] = value
		}
		return arr
	}))

	arrayProto.SetProperty("forEach", e.newBuiltin("forEach", func(this object.Value, args []object.Value) object.Value {
		arr, fn, errValue := e.arrayCallbackArgs("forEach", this, args)
		if errValue != nil {
			return errValue
		}
		for i, el := range arr.Elements {
			result := e.applyFunction(fn, e.global, []object.Value{el, e.heap.NewNumber(float64(i)), arr})
			if isCarrier(result) {
				return result
			}
		}
		return e.undefined()
	}))

	arrayProto.SetProperty("map", e.newBuiltin("map", func(this object.Value, args []object.Value) object.Value {
		arr, fn, errValue := e.arrayCallbackArgs("map", this, args)
		if errValue != nil {
			return errValue
		}
		elements := make([]object.Value, len(arr.Elements))
		for i, el := range arr.Elements {
			result := e.applyFunction(fn, e.global, []object.Value{el, e.heap.NewNumber(float64(i)), arr})
			if isCarrier(result) {
				return result
			}
			elements[i] = result
		}
		return e.heap.NewArray(elements)
	}))

	arrayProto.SetProperty("filter", e.newBuiltin("filter", func(this object.Value, args []object.Value) object.Value {
		arr, fn, errValue := e.arrayCallbackArgs("filter", this, args)
		if errValue != nil {
			return errValue
		}
		elements := []object.Value{}
		for i, el := range arr.Elements {
			result := e.applyFunction(fn, e.global, []object.Value{el, e.heap.NewNumber(float64(i)), arr})
			if isCarrier(result) {
				return result
			}
			if object.IsTruthy(result) {
				elements = append(elements, el)
			}
		}
		return e.heap.NewArray(elements)
	}))

	arrayProto.SetProperty("reduce", e.newBuiltin("reduce", func(this object.Value, args []object.Value) object.Value {
		arr, fn, errValue := e.arrayCallbackArgs("reduce", this, args)
		if errValue != nil {
			return errValue
		}

		var accumulator object.Value
		start := 0
		if len(args) > 1 {
			accumulator = args[1]
		} else {
			if len(arr.Elements) == 0 {
				return e.throwTypeError("reduce of empty array with no initial value")
			}
			accumulator = arr.Elements[0]
			start = 1
		}

		for i := start; i < len(arr.Elements); i++ {
			result := e.applyFunction(fn, e.global, []object.Value{
				accumulator, arr.Elements[i], e.heap.NewNumber(float64(i)), arr,
			})
			if isCarrier(result) {
				return result
			}
			accumulator = result
		}

		return accumulator
	}))

	arrayProto.SetProperty("toString", e.newBuiltin("toString", func(this object.Value, args []object.Value) object.Value {
		return e.heap.NewString(object.DefaultToString(this))
	}))

	e.heap.SetPrototype(object.ARRAY_OBJ, arrayProto)
	e.global.SetProperty("Array", ctor)
}

func (e *Evaluator) arrayCallbackArgs(name string, this object.Value, args []object.Value) (*object.Array, *object.Function, object.Value) {
	arr, ok := this.(*object.Array)
	if !ok {
		return nil, nil, e.throwTypeError("%s called on non-array", name)
	}
	fn, ok := e.argAt(args, 0).(*object.Function)
	if !ok {
		return nil, nil, e.throwTypeError("%s expects a function argument", name)
	}
	return arr, fn, nil
}
