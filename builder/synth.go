package builder

import (
	"fmt"

	"github.com/dave/jennifer/jen"
)

// DefaultRuntimeImport is the import path of the package generated builders depend on.
const DefaultRuntimeImport = "github.com/sghaida/buildergen/buildkit"

// SlotDescriptor links one source field to its builder slot and setter.
type SlotDescriptor struct {
	Field  string
	Slot   string
	Setter string
	Type   string
}

// BuilderDescriptor is the shape of a generated builder: exactly one slot per field.
type BuilderDescriptor struct {
	Name   string
	Target string
	Slots  []SlotDescriptor
}

// DescribeBuilder derives the builder shape from a descriptor.
func DescribeBuilder(td TypeDescriptor) BuilderDescriptor {
	slots := make([]SlotDescriptor, 0, len(td.Fields))
	for _, field := range td.Fields {
		slots = append(slots, SlotDescriptor{
			Field:  field.Name,
			Slot:   slotName(field.Name),
			Setter: setterName(field.Name),
			Type:   field.Type,
		})
	}
	return BuilderDescriptor{Name: BuilderName(td.Name), Target: td.Name, Slots: slots}
}

// decl is one top-level declaration with its doc comment.
type decl struct {
	doc  string
	code *jen.Statement
}

// Artifact is the synthesized code for a single type.
type Artifact struct {
	Descriptor    TypeDescriptor
	Builder       BuilderDescriptor
	RuntimeImport string

	decls []decl
}

// Synthesizer emits builder code. The zero value uses DefaultRuntimeImport.
type Synthesizer struct {
	RuntimeImport string
}

// Synthesize is Synthesizer{}.Synthesize.
func Synthesize(td TypeDescriptor) (*Artifact, error) {
	return Synthesizer{}.Synthesize(td)
}

// Synthesize emits the builder type, its constructor, one setter per field and
// the Missing/Build/MustBuild finalizers. The output depends on td alone.
func (s Synthesizer) Synthesize(td TypeDescriptor) (*Artifact, error) {
	runtimeImport := s.RuntimeImport
	if runtimeImport == "" {
		runtimeImport = DefaultRuntimeImport
	}

	g, err := newGenerator(td, runtimeImport)
	if err != nil {
		return nil, err
	}

	artifact := &Artifact{
		Descriptor:    td,
		Builder:       g.builder,
		RuntimeImport: runtimeImport,
	}
	artifact.decls = append(artifact.decls, g.builderType(), g.constructor())
	for i := range g.builder.Slots {
		artifact.decls = append(artifact.decls, g.setter(i))
	}
	artifact.decls = append(artifact.decls, g.missing(), g.build(), g.mustBuild())
	return artifact, nil
}

// generator holds the pre-emitted pieces shared by every declaration.
// jennifer statements are mutable, so refs are rebuilt per use.
type generator struct {
	td      TypeDescriptor
	builder BuilderDescriptor
	runtime string

	typeParams []jen.Code
	typeArgs   []jen.Code
	slotTypes  []*jen.Statement
}

func newGenerator(td TypeDescriptor, runtimeImport string) (*generator, error) {
	g := &generator{td: td, builder: DescribeBuilder(td), runtime: runtimeImport}
	emitter := typeEmitter{imports: td.Imports}

	for _, param := range td.TypeParams {
		constraint, err := emitter.emit(param.Constraint)
		if err != nil {
			return nil, fmt.Errorf("%s: type parameter %s: %w", td.Name, param.Name, err)
		}
		g.typeParams = append(g.typeParams, jen.Id(param.Name).Add(constraint))
		g.typeArgs = append(g.typeArgs, jen.Id(param.Name))
	}

	for _, slot := range g.builder.Slots {
		code, err := emitter.emit(slot.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: field %s: %w", td.Name, slot.Field, err)
		}
		g.slotTypes = append(g.slotTypes, code)
	}
	return g, nil
}

func (g *generator) generic(name string) *jen.Statement {
	ref := jen.Id(name)
	if len(g.typeArgs) > 0 {
		ref.Types(g.typeArgs...)
	}
	return ref
}

func (g *generator) targetRef() *jen.Statement  { return g.generic(g.builder.Target) }
func (g *generator) builderRef() *jen.Statement { return g.generic(g.builder.Name) }

func (g *generator) receiver() *jen.Statement {
	return jen.Id(receiverName).Op("*").Add(g.builderRef())
}

func (g *generator) declare(name string) *jen.Statement {
	id := jen.Id(name)
	if len(g.typeParams) > 0 {
		id.Types(g.typeParams...)
	}
	return id
}

func (g *generator) builderType() decl {
	fields := make([]jen.Code, 0, len(g.builder.Slots))
	for i, slot := range g.builder.Slots {
		fields = append(fields, jen.Id(slot.Slot).Qual(g.runtime, "Slot").Types(g.slotTypes[i]))
	}
	return decl{
		doc:  fmt.Sprintf("%s stages the fields of %s until Build is called.", g.builder.Name, g.builder.Target),
		code: jen.Type().Add(g.declare(g.builder.Name)).Struct(fields...),
	}
}

func (g *generator) constructor() decl {
	name := "New" + g.builder.Name
	return decl{
		doc: fmt.Sprintf("%s returns a %s with every field unset.", name, g.builder.Name),
		code: jen.Func().Add(g.declare(name)).Params().Op("*").Add(g.builderRef()).Block(
			jen.Return(jen.Op("&").Add(g.builderRef()).Values()),
		),
	}
}

func (g *generator) setter(i int) decl {
	slot := g.builder.Slots[i]
	return decl{
		doc: fmt.Sprintf("%s sets %s, replacing any previous value.", slot.Setter, slot.Field),
		code: jen.Func().Params(g.receiver()).Id(slot.Setter).
			Params(jen.Id(setterParam).Add(g.slotTypes[i])).
			Op("*").Add(g.builderRef()).
			Block(
				jen.Id(receiverName).Dot(slot.Slot).Dot("Set").Call(jen.Id(setterParam)),
				jen.Return(jen.Id(receiverName)),
			),
	}
}

func (g *generator) missing() decl {
	return decl{
		doc: "Missing returns the fields that have not been set, in declaration order.",
		code: jen.Func().Params(g.receiver()).Id("Missing").Params().Index().String().BlockFunc(func(body *jen.Group) {
			body.Var().Id(missingVar).Index().String()
			for _, slot := range g.builder.Slots {
				body.If(jen.Op("!").Id(receiverName).Dot(slot.Slot).Dot("IsSet").Call()).Block(
					jen.Id(missingVar).Op("=").Append(jen.Id(missingVar), jen.Lit(slot.Field)),
				)
			}
			body.Return(jen.Id(missingVar))
		}),
	}
}

func (g *generator) build() decl {
	values := jen.Dict{}
	for _, slot := range g.builder.Slots {
		values[jen.Id(slot.Field)] = jen.Id(receiverName).Dot(slot.Slot).Dot("Value").Call()
	}

	return decl{
		doc: fmt.Sprintf("Build returns the %s assembled from the staged fields.\n"+
			"It fails with buildkit.IncompleteError while any field is unset.", g.builder.Target),
		code: jen.Func().Params(g.receiver()).Id("Build").Params().Params(g.targetRef(), jen.Error()).Block(
			jen.If(
				jen.Id(missingVar).Op(":=").Id(receiverName).Dot("Missing").Call(),
				jen.Len(jen.Id(missingVar)).Op(">").Lit(0),
			).Block(
				jen.Return(
					g.targetRef().Values(),
					jen.Qual(g.runtime, "IncompleteError").Values(jen.Dict{
						jen.Id("Type"):    jen.Lit(g.builder.Target),
						jen.Id("Missing"): jen.Id(missingVar),
					}),
				),
			),
			jen.Return(g.targetRef().Values(values), jen.Nil()),
		),
	}
}

func (g *generator) mustBuild() decl {
	return decl{
		doc: "MustBuild is like Build but panics if any field is unset.",
		code: jen.Func().Params(g.receiver()).Id("MustBuild").Params().Add(g.targetRef()).Block(
			jen.List(jen.Id(setterParam), jen.Err()).Op(":=").Id(receiverName).Dot("Build").Call(),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Panic(jen.Err())),
			jen.Return(jen.Id(setterParam)),
		),
	}
}
