package object

import "log/slog"

// DefaultGCThreshold is the heap size that triggers a collection cycle on
// the next allocation.
const DefaultGCThreshold = 25000

// Heap owns every value the evaluator produces. Allocation wires the value's
// __proto__ to the registered prototype for its kind, records a mark bit, and
// registers the value in the current frame's allocation set. When the table
// grows past the threshold, the next allocation runs mark-and-sweep.
type Heap struct {
	values    map[Value]bool // value -> marked
	threshold int

	scopes *ScopeStack
	global *Object

	prototypes map[ValueType]Value

	undefined *Undefined
	null      *Null

	collections int
}

func NewHeap(threshold int) *Heap {
	if threshold <= 0 {
		threshold = DefaultGCThreshold
	}
	return &Heap{
		values:     make(map[Value]bool),
		threshold:  threshold,
		prototypes: make(map[ValueType]Value),
		undefined:  &Undefined{},
		null:       &Null{},
	}
}

// SetRoots hands the heap its GC roots: the live scope stack and the global
// object.
func (h *Heap) SetRoots(scopes *ScopeStack, global *Object) {
	h.scopes = scopes
	h.global = global
}

// SetPrototype registers the prototype wired onto newly allocated values of
// the given kind.
func (h *Heap) SetPrototype(t ValueType, proto Value) {
	h.prototypes[t] = proto
}

func (h *Heap) Prototype(t ValueType) Value {
	return h.prototypes[t]
}

// Undefined returns the shared undefined sentinel.
func (h *Heap) Undefined() *Undefined { return h.undefined }

// Null returns the shared null sentinel.
func (h *Heap) Null() *Null { return h.null }

func (h *Heap) Size() int { return len(h.values) }

func (h *Heap) Collections() int { return h.collections }

func (h *Heap) allocate(v Value) Value {
	if len(h.values) > h.threshold {
		h.Collect()
	}

	if proto, ok := h.prototypes[v.Type()]; ok {
		if _, has := v.OwnProperty(ProtoKey); !has {
			v.SetProperty(ProtoKey, proto)
		}
	}

	h.values[v] = false

	if h.scopes != nil {
		h.scopes.Current().Register(v)
	}

	return v
}

func (h *Heap) NewObject() *Object {
	o := &Object{}
	h.allocate(o)
	return o
}

func (h *Heap) NewArray(elements []Value) *Array {
	a := &Array{Elements: elements}
	h.allocate(a)
	return a
}

func (h *Heap) NewNumber(value float64) *Number {
	n := &Number{Value: value}
	h.allocate(n)
	return n
}

func (h *Heap) NewString(value string) *String {
	s := &String{Value: value}
	h.allocate(s)
	return s
}

func (h *Heap) NewBoolean(value bool) *Boolean {
	b := &Boolean{Value: value}
	h.allocate(b)
	return b
}

// NewFunction allocates a function value together with its prototype object,
// whose constructor property back-references the function.
func (h *Heap) NewFunction(name string) *Function {
	fn := &Function{Name: name}
	h.allocate(fn)

	proto := h.NewObject()
	proto.SetProperty("constructor", fn)
	fn.SetProperty("prototype", proto)

	return fn
}

// Collect runs a full mark-and-sweep cycle. The mark phase walks a worklist
// seeded from every live frame's variables and this context, the global
// object, and the registered prototypes; property maps, array elements, and
// captured function scopes propagate marks. The sweep frees values that are
// unmarked and not registered in any live frame's allocation set.
func (h *Heap) Collect() {
	h.collections++

	for v := range h.values {
		h.values[v] = false
	}

	worklist := []Value{}
	visitedFrames := map[*Frame]bool{}

	var pushFrame func(f *Frame)
	pushFrame = func(f *Frame) {
		for ; f != nil; f = f.outer {
			if visitedFrames[f] {
				return
			}
			visitedFrames[f] = true
			for _, v := range f.Variables() {
				worklist = append(worklist, v)
			}
			if f.this != nil {
				worklist = append(worklist, f.this)
			}
		}
	}

	if h.global != nil {
		worklist = append(worklist, h.global)
	}
	for _, proto := range h.prototypes {
		worklist = append(worklist, proto)
	}
	if h.scopes != nil {
		for _, frame := range h.scopes.Frames() {
			pushFrame(frame)
		}
	}

	visited := map[Value]bool{}

	for len(worklist) > 0 {
		v := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if visited[v] {
			continue
		}
		visited[v] = true

		if _, tracked := h.values[v]; tracked {
			h.values[v] = true
		}

		for _, prop := range v.Properties() {
			worklist = append(worklist, prop)
		}
		if arr, ok := v.(*Array); ok {
			worklist = append(worklist, arr.Elements...)
		}
		if fn, ok := v.(*Function); ok && fn.Scope != nil {
			pushFrame(fn.Scope)
		}
	}

	swept := 0
	for v, marked := range h.values {
		if marked {
			continue
		}
		if h.inLiveAllocationSet(v) {
			continue
		}
		delete(h.values, v)
		swept++
	}

	slog.Debug("heap collection complete",
		slog.Int("cycle", h.collections),
		slog.Int("swept", swept),
		slog.Int("live", len(h.values)))
}

func (h *Heap) inLiveAllocationSet(v Value) bool {
	if h.scopes == nil {
		return false
	}
	for _, frame := range h.scopes.Frames() {
		if frame.allocatedHere(v) {
			return true
		}
	}
	return false
}
