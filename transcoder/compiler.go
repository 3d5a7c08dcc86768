package transcoder

import (
	"reflect"
	"strconv"
	"sync"

	"github.com/wippyai/formcodec/errors"
	"github.com/wippyai/formcodec/value"
)

var (
	enumTypeIface = reflect.TypeFor[EnumType]()
	unionIface    = reflect.TypeFor[Union]()
)

type Compiler struct {
	cache sync.Map // cacheKey -> *CompiledType
}

type cacheKey struct {
	goType reflect.Type
	char   bool
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile maps a Go type to its compiled form. A top-level pointer is
// dereferenced; nested pointers become options.
func (c *Compiler) Compile(goType reflect.Type) (*CompiledType, error) {
	if goType == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("Go type cannot be nil").
			Build()
	}

	if goType.Kind() == reflect.Pointer {
		goType = goType.Elem()
	}

	compiled := map[cacheKey]*CompiledType{}
	ct, err := c.compileCached(goType, false, nil, compiled)
	if err != nil {
		return nil, err
	}

	// publish only complete graphs; a failed compile may leave recursive
	// references half built
	for k, v := range compiled {
		c.cache.LoadOrStore(k, v)
	}
	return ct, nil
}

// Shape returns the decoding shape for a Go type.
func (c *Compiler) Shape(goType reflect.Type) (*value.Shape, error) {
	ct, err := c.Compile(goType)
	if err != nil {
		return nil, err
	}
	return ct.Shape, nil
}

// compileCached consults the shared cache, then the types compiled so far
// in this call, so recursive types terminate.
func (c *Compiler) compileCached(goType reflect.Type, char bool, path []string, compiled map[cacheKey]*CompiledType) (*CompiledType, error) {
	key := cacheKey{goType: goType, char: char}
	if cached, ok := c.cache.Load(key); ok {
		return cached.(*CompiledType), nil
	}
	if ct, ok := compiled[key]; ok {
		return ct, nil
	}

	ct := &CompiledType{GoType: goType, Shape: &value.Shape{}}
	compiled[key] = ct
	if err := c.compile(ct, char, path, compiled); err != nil {
		return nil, err
	}
	return ct, nil
}

// compile fills ct in place. ct.Shape is allocated up front so a recursive
// reference can point at it before it is complete.
func (c *Compiler) compile(ct *CompiledType, char bool, path []string, compiled map[cacheKey]*CompiledType) error {
	goType := ct.GoType

	if goType.Kind() == reflect.String && goType.Implements(enumTypeIface) {
		return c.compileEnum(ct)
	}
	if goType.Kind() == reflect.Struct && (goType.Implements(unionIface) || reflect.PointerTo(goType).Implements(unionIface)) {
		return c.compileUnion(ct, path, compiled)
	}

	switch goType.Kind() {
	case reflect.Bool:
		c.scalar(ct, value.KindBool, 0)

	case reflect.Int32:
		if char {
			c.scalar(ct, value.KindChar, 0)
		} else {
			c.scalar(ct, value.KindInt, 32)
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int64:
		c.scalar(ct, value.KindInt, goType.Bits())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		c.scalar(ct, value.KindUint, goType.Bits())

	case reflect.Float32, reflect.Float64:
		c.scalar(ct, value.KindFloat, goType.Bits())

	case reflect.String:
		c.scalar(ct, value.KindString, 0)

	case reflect.Slice:
		elem, err := c.compileCached(goType.Elem(), char, append(append([]string{}, path...), "[elem]"), compiled)
		if err != nil {
			return err
		}
		ct.Kind = value.KindSeq
		ct.Elem = elem
		*ct.Shape = value.Shape{Kind: value.KindSeq, Elem: elem.Shape}

	case reflect.Array:
		elem, err := c.compileCached(goType.Elem(), char, append(append([]string{}, path...), "[elem]"), compiled)
		if err != nil {
			return err
		}
		elems := make([]*value.Shape, goType.Len())
		for i := range elems {
			elems[i] = elem.Shape
		}
		ct.Kind = value.KindTuple
		ct.Elem = elem
		*ct.Shape = value.Shape{Kind: value.KindTuple, Elems: elems}

	case reflect.Map:
		key, err := c.compileCached(goType.Key(), false, append(append([]string{}, path...), "[key]"), compiled)
		if err != nil {
			return err
		}
		val, err := c.compileCached(goType.Elem(), char, append(append([]string{}, path...), "[value]"), compiled)
		if err != nil {
			return err
		}
		ct.Kind = value.KindMap
		ct.Key = key
		ct.Elem = val
		*ct.Shape = value.Shape{Kind: value.KindMap, Key: key.Shape, Elem: val.Shape}

	case reflect.Pointer:
		elem, err := c.compileCached(goType.Elem(), char, append(append([]string{}, path...), "[some]"), compiled)
		if err != nil {
			return err
		}
		ct.Kind = value.KindOption
		ct.Elem = elem
		*ct.Shape = value.Shape{Kind: value.KindOption, Elem: elem.Shape}

	case reflect.Struct:
		if goType.NumField() == 0 {
			c.scalar(ct, value.KindUnit, 0)
			return nil
		}
		return c.compileStruct(ct, path, compiled)

	default:
		return errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(goType.String()).
			Detail("no form representation for %s", goType.Kind()).
			Build()
	}
	return nil
}

func (c *Compiler) scalar(ct *CompiledType, kind value.Kind, bits int) {
	if bits == 64 {
		bits = 0
	}
	ct.Kind = kind
	*ct.Shape = value.Shape{Kind: kind, Bits: bits}
}

func (c *Compiler) compileStruct(ct *CompiledType, path []string, compiled map[cacheKey]*CompiledType) error {
	goType := ct.GoType
	fields := make([]CompiledField, 0, goType.NumField())
	shapes := make([]value.FieldShape, 0, goType.NumField())

	for i := 0; i < goType.NumField(); i++ {
		f := goType.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := parseTag(f)
		if tag.skip {
			continue
		}
		name := fieldName(f, tag)

		if tag.char && !isRuneLike(f.Type) {
			return errors.TypeMismatch(errors.PhaseCompile, append(append([]string{}, path...), name), f.Type.String(), "int32 (rune)")
		}

		fieldPath := append(append([]string{}, path...), name)
		ft, err := c.compileCached(f.Type, tag.char, fieldPath, compiled)
		if err != nil {
			return err
		}

		fields = append(fields, CompiledField{Name: name, Index: i, Type: ft})
		shapes = append(shapes, value.FieldOf(name, ft.Shape))
	}

	ct.Kind = value.KindStruct
	ct.Fields = fields
	*ct.Shape = value.Shape{Kind: value.KindStruct, Name: goType.Name(), Fields: shapes}
	return nil
}

// isRuneLike reports whether the char option can apply: int32 itself or a
// container of it.
func isRuneLike(t reflect.Type) bool {
	for {
		switch t.Kind() {
		case reflect.Int32:
			return true
		case reflect.Slice, reflect.Array, reflect.Pointer, reflect.Map:
			t = t.Elem()
		default:
			return false
		}
	}
}

func (c *Compiler) compileEnum(ct *CompiledType) error {
	names := reflect.Zero(ct.GoType).Interface().(EnumType).FormCases()
	if len(names) == 0 {
		return errors.New(errors.PhaseCompile, errors.KindUnsupported).
			GoType(ct.GoType.String()).
			Detail("enum declares no cases").
			Build()
	}

	cases := make([]CompiledCase, len(names))
	shapes := make([]value.CaseShape, len(names))
	for i, n := range names {
		cases[i] = CompiledCase{Name: n, Index: -1, Form: value.UnitVariant}
		shapes[i] = value.CaseShape{Name: n, Form: value.UnitVariant}
	}

	ct.Kind = value.KindEnum
	ct.Cases = cases
	*ct.Shape = value.Shape{Kind: value.KindEnum, Name: ct.GoType.Name(), Cases: shapes}
	return nil
}

func (c *Compiler) compileUnion(ct *CompiledType, path []string, compiled map[cacheKey]*CompiledType) error {
	goType := ct.GoType
	var (
		cases  []CompiledCase
		shapes []value.CaseShape
	)

	for i := 0; i < goType.NumField(); i++ {
		f := goType.Field(i)
		if !f.IsExported() || f.Type.Kind() != reflect.Pointer {
			continue
		}
		tag := parseTag(f)
		if tag.skip {
			continue
		}
		name := caseName(f, tag)
		payload := f.Type.Elem()
		casePath := append(append([]string{}, path...), name)

		cc := CompiledCase{Name: name, Index: i}
		cs := value.CaseShape{Name: name}

		switch {
		case payload.Kind() == reflect.Struct && payload.NumField() == 0:
			cc.Form = value.UnitVariant

		default:
			pt, err := c.compileCached(payload, tag.char, casePath, compiled)
			if err != nil {
				return err
			}
			cc.Type = pt
			cs.Payload = pt.Shape
			switch pt.Kind {
			case value.KindStruct:
				cc.Form = value.StructVariant
			case value.KindTuple:
				cc.Form = value.TupleVariant
			default:
				cc.Form = value.NewtypeVariant
			}
		}

		cs.Form = cc.Form
		cases = append(cases, cc)
		shapes = append(shapes, cs)
	}

	if len(cases) == 0 {
		return errors.New(errors.PhaseCompile, errors.KindUnsupported).
			Path(path...).
			GoType(goType.String()).
			Detail("union has no pointer fields").
			Build()
	}

	ct.Kind = value.KindEnum
	ct.Union = true
	ct.Cases = cases
	*ct.Shape = value.Shape{Kind: value.KindEnum, Name: goType.Name(), Cases: shapes}
	return nil
}

func indexSeg(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
