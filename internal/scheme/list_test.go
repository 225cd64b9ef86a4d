package scheme

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(templates []*Template) []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = t.Name
	}
	return out
}

func TestFindRecursionFrom_SelfReference(t *testing.T) {
	tmpl := NewTemplate("T")
	ref := NewTemplateReference(tmpl)
	tmpl.Schemes = append(tmpl.Schemes, ref)
	list := NewTemplateList(tmpl)

	cycle := list.FindRecursionFrom(ref)
	require.NotEmpty(t, cycle)
	assert.Equal(t, []string{"T"}, names(cycle))

	problem := ref.Validate(testEnv(list))
	require.NotNil(t, problem)
	assert.Equal(t, KeyReferenceRecursion, problem.Key)
	assert.Equal(t, "Found recursion: (T)", problem.Message)
}

func TestFindRecursionFrom_DiamondIsNotACycle(t *testing.T) {
	b := NewTemplate("B", NewIntegerScheme())
	c := NewTemplate("C", NewWordScheme())
	toB := NewTemplateReference(b)
	toC := NewTemplateReference(c)
	a := NewTemplate("A", toB, toC)
	list := NewTemplateList(a, b, c)

	assert.Nil(t, list.FindRecursionFrom(toB))
	assert.Nil(t, list.FindRecursionFrom(toC))
	assert.Nil(t, list.Validate(testEnv(list)))
}

func TestFindRecursionFrom_SharedTargetIsNotACycle(t *testing.T) {
	d := NewTemplate("D", NewIntegerScheme())
	b := NewTemplate("B", NewTemplateReference(d))
	c := NewTemplate("C", NewTemplateReference(d))
	toB := NewTemplateReference(b)
	a := NewTemplate("A", toB, NewTemplateReference(c))
	list := NewTemplateList(a, b, c, d)

	assert.Nil(t, list.FindRecursionFrom(toB))
	assert.Nil(t, list.Validate(testEnv(list)))
}

func TestFindRecursionFrom_LongCycleReturnsSuffix(t *testing.T) {
	a := NewTemplate("A")
	b := NewTemplate("B")
	c := NewTemplate("C")
	start := NewTemplateReference(b)
	a.Schemes = []Scheme{start}
	b.Schemes = []Scheme{NewTemplateReference(c)}
	c.Schemes = []Scheme{NewTemplateReference(b)}
	list := NewTemplateList(a, b, c)

	cycle := list.FindRecursionFrom(start)
	assert.Equal(t, []string{"B", "C"}, names(cycle))
}

func TestFindRecursionFrom_CycleThroughOwner(t *testing.T) {
	a := NewTemplate("A")
	b := NewTemplate("B")
	start := NewTemplateReference(b)
	a.Schemes = []Scheme{NewLiteralScheme("-"), start}
	b.Schemes = []Scheme{NewTemplateReference(a)}
	list := NewTemplateList(a, b)

	cycle := list.FindRecursionFrom(start)
	assert.Equal(t, []string{"A", "B"}, names(cycle))

	problem := start.Validate(testEnv(list))
	require.NotNil(t, problem)
	assert.Equal(t, "Found recursion: (A → B)", problem.Message)

	_, err := list.Generate(testEnv(list), a.UUID, 1)
	genErr, ok := AsGenerationError(err)
	require.True(t, ok)
	assert.Equal(t, KeyReferenceRecursion, genErr.Key)
}

func TestFindRecursionFrom_NestedTemplateReference(t *testing.T) {
	outer := NewTemplate("Outer")
	ref := NewTemplateReference(outer)
	outer.Schemes = []Scheme{NewTemplate("Inner", ref)}
	list := NewTemplateList(outer)

	assert.Equal(t, []string{"Outer"}, names(list.FindRecursionFrom(ref)))
}

func TestFindRecursionFrom_NilList(t *testing.T) {
	var list *TemplateList
	assert.Nil(t, list.FindRecursionFrom(NewTemplateReference(NewTemplate("T"))))
}

func TestTemplateReference_Unset(t *testing.T) {
	ref := NewTemplateReference(nil)
	list := NewTemplateList(NewTemplate("T", ref))

	problem := ref.Validate(testEnv(list))
	require.NotNil(t, problem)
	assert.Equal(t, KeyReferenceUnset, problem.Key)
}

func TestTemplateReference_NotFound(t *testing.T) {
	ref := NewTemplateReference(nil)
	ref.Point(uuid.New())
	holder := NewTemplate("T", ref)
	list := NewTemplateList(holder)

	problem := ref.Validate(testEnv(list))
	require.NotNil(t, problem)
	assert.Equal(t, KeyReferenceNotFound, problem.Key)

	values, err := Generate(testEnv(list), ref, 3)
	assert.Nil(t, values)
	genErr, ok := AsGenerationError(err)
	require.True(t, ok)
	assert.Equal(t, KeyReferenceNotFound, genErr.Key)
}

func TestTemplateReference_GeneratesTarget(t *testing.T) {
	target := NewTemplate("Greeting", NewLiteralScheme("hello"))
	ref := NewTemplateReference(target)
	ref.Capitalization = CapitalizationUpper
	ref.Affix.Descriptor = "<@>"
	holder := NewTemplate("Holder", ref, NewLiteralScheme("!"))
	list := NewTemplateList(target, holder)

	values, err := list.Generate(testEnv(nil), holder.UUID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"<HELLO>!", "<HELLO>!"}, values)
}

func TestTemplateReference_FollowsRetarget(t *testing.T) {
	first := NewTemplate("First", NewLiteralScheme("1"))
	second := NewTemplate("Second", NewLiteralScheme("2"))
	ref := NewTemplateReference(first)
	holder := NewTemplate("Holder", ref)
	list := NewTemplateList(first, second, holder)

	values, err := list.Generate(testEnv(nil), holder.UUID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, values)

	first.Schemes[0].(*LiteralScheme).Text = "one"
	values, err = list.Generate(testEnv(nil), holder.UUID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, values)

	ref.Point(second.UUID)
	values, err = list.Generate(testEnv(nil), holder.UUID, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, values)
}

func TestTemplateList_ValidateDuplicateNameFirst(t *testing.T) {
	bad := NewWordScheme()
	bad.Words = nil
	list := NewTemplateList(
		NewTemplate("A", bad),
		NewTemplate("B"),
		NewTemplate("B"),
	)

	problem := list.Validate(testEnv(nil))
	require.NotNil(t, problem)
	assert.Equal(t, KeyNameDuplicate, problem.Key)
	assert.Contains(t, problem.Message, "'B'")
}

func TestTemplateList_ValidateInListOrder(t *testing.T) {
	emptyWords := NewWordScheme()
	emptyWords.Words = nil
	badInt := NewIntegerScheme()
	badInt.MinValue = 5000
	list := NewTemplateList(NewTemplate("A", badInt), NewTemplate("B", emptyWords))

	problem := list.Validate(testEnv(nil))
	require.NotNil(t, problem)
	assert.Equal(t, KeyMinAboveMax, problem.Key)
}

func TestTemplateList_DefaultIsValid(t *testing.T) {
	list := DefaultTemplateList()
	assert.Nil(t, list.Validate(testEnv(nil)))
	for _, tmpl := range list.Templates {
		values, err := list.Generate(testEnv(nil), tmpl.UUID, 5)
		require.NoError(t, err, tmpl.Name)
		assert.Len(t, values, 5)
	}
}

func TestTemplateList_GenerateUnknownTemplate(t *testing.T) {
	list := DefaultTemplateList()
	_, err := list.Generate(testEnv(nil), uuid.New(), 1)
	genErr, ok := AsGenerationError(err)
	require.True(t, ok)
	assert.Equal(t, KeyTemplateUnknown, genErr.Key)
}

func TestTemplateList_Lookups(t *testing.T) {
	list := DefaultTemplateList()
	word := list.TemplateByName("Word")
	require.NotNil(t, word)
	assert.Same(t, word, list.TemplateByID(word.UUID))
	assert.Equal(t, 3, list.IndexOf(word.UUID))
	assert.Same(t, word, list.ParentOf(word.Schemes[0]))
	assert.Nil(t, list.TemplateByName("missing"))
	assert.Nil(t, list.ParentOf(NewIntegerScheme()))
}

func TestTemplateList_DeepCopyRemapsReferences(t *testing.T) {
	target := NewTemplate("Target", NewIntegerScheme())
	outside := uuid.New()
	inner := NewTemplateReference(target)
	dangling := NewTemplateReference(nil)
	dangling.Point(outside)
	list := NewTemplateList(target, NewTemplate("Holder", inner, dangling))

	kept := list.DeepCopy(true)
	assert.True(t, list.Equal(kept))
	assert.NotSame(t, list.Templates[0], kept.Templates[0])

	fresh := list.DeepCopy(false)
	assert.False(t, list.Equal(fresh))
	refs := fresh.Templates[1].References()
	require.Len(t, refs, 2)
	assert.Equal(t, fresh.Templates[0].UUID, *refs[0].TemplateID)
	assert.NotEqual(t, target.UUID, *refs[0].TemplateID)
	assert.Equal(t, outside, *refs[1].TemplateID)
	assert.Equal(t, target.UUID, *inner.TemplateID)
}

func TestTemplateList_CopyFromAndEqual(t *testing.T) {
	list := DefaultTemplateList()
	working := list.DeepCopy(true)
	require.True(t, list.Equal(working))

	working.Templates[0].Name = "Number"
	assert.False(t, list.Equal(working))

	working.CopyFrom(list)
	assert.True(t, list.Equal(working))
	working.Templates[0].Name = "Again"
	assert.Equal(t, "Integer", list.Templates[0].Name)
}
