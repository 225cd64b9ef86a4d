package scheme

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAffixDecorator_Split(t *testing.T) {
	tests := []struct {
		descriptor     string
		prefix, suffix string
	}{
		{descriptor: "", prefix: "", suffix: ""},
		{descriptor: "[@]", prefix: "[", suffix: "]"},
		{descriptor: `"`, prefix: `"`, suffix: `"`},
		{descriptor: "id-@", prefix: "id-", suffix: ""},
		{descriptor: `\@@\@`, prefix: "@", suffix: "@"},
		{descriptor: `a\\@b`, prefix: `a\`, suffix: "b"},
		{descriptor: "<@>@", prefix: "<", suffix: ">@"},
	}
	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			d := NewAffixDecorator(tt.descriptor)
			prefix, suffix, ok := d.split()
			require.True(t, ok)
			assert.Equal(t, tt.prefix, prefix)
			assert.Equal(t, tt.suffix, suffix)
		})
	}
}

func TestAffixDecorator_DanglingEscape(t *testing.T) {
	d := NewAffixDecorator(`[@\`)
	problem := d.Validate(testEnv(nil))
	require.NotNil(t, problem)
	assert.Equal(t, KeyAffixDanglingEscape, problem.Key)
}

func TestAffixDecorator_WrapsValues(t *testing.T) {
	s := NewLiteralScheme("v")
	s.Affix.Descriptor = "<@>"
	values, err := Generate(testEnv(nil), s, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"<v>", "<v>"}, values)
}

func TestArrayDecorator_SizesAndSeparator(t *testing.T) {
	s := NewLiteralScheme("x")
	s.Array.IsEnabled = true
	s.Array.MinCount, s.Array.MaxCount = 1, 4

	values, err := Generate(testEnv(nil), s, 50)
	require.NoError(t, err)
	require.Len(t, values, 50)
	for _, v := range values {
		require.True(t, strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]"), v)
		n := strings.Count(v, "x")
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 4)
		assert.Equal(t, n-1, strings.Count(v, ", "))
	}
}

func TestArrayDecorator_NoSeparator(t *testing.T) {
	s := NewLiteralScheme("ab")
	s.Array.IsEnabled = true
	s.Array.MinCount, s.Array.MaxCount = 3, 3
	s.Array.SeparatorEnabled = false
	s.Array.Affix.Descriptor = ""

	values, err := Generate(testEnv(nil), s, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ababab"}, values)
}

func TestArrayDecorator_Validation(t *testing.T) {
	d := NewArrayDecorator()
	assert.Nil(t, d.Validate(testEnv(nil)))

	d.MinCount = 0
	assert.Nil(t, d.Validate(testEnv(nil)), "disabled decorators are not validated")

	d.IsEnabled = true
	require.NotNil(t, d.Validate(testEnv(nil)))
	assert.Equal(t, KeyArrayMinCount, d.Validate(testEnv(nil)).Key)

	d.MinCount, d.MaxCount = 5, 2
	assert.Equal(t, KeyMinAboveMax, d.Validate(testEnv(nil)).Key)
}

func TestFixedLengthDecorator(t *testing.T) {
	s := NewIntegerScheme()
	s.MinValue, s.MaxValue = 7, 7
	s.FixedLength.IsEnabled = true
	s.FixedLength.Length = 3

	values, err := Generate(testEnv(nil), s, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"007"}, values)

	s.MinValue, s.MaxValue = 12345, 12345
	values, err = Generate(testEnv(nil), s, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"345"}, values)
}

func TestFixedLengthDecorator_Validation(t *testing.T) {
	d := NewFixedLengthDecorator()
	d.IsEnabled = true
	d.Filler = "ab"
	assert.Equal(t, KeyFixedLengthFiller, d.Validate(testEnv(nil)).Key)
	d.Filler = "0"
	d.Length = 0
	assert.Equal(t, KeyFixedLengthLength, d.Validate(testEnv(nil)).Key)
}

func TestIntegerScheme_Formatting(t *testing.T) {
	s := NewIntegerScheme()
	s.MinValue, s.MaxValue = 1234567, 1234567
	s.GroupingSeparatorEnabled = true
	values, err := Generate(testEnv(nil), s, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"1,234,567"}, values)

	s.GroupingSeparatorEnabled = false
	s.MinValue, s.MaxValue = 255, 255
	s.Radix = 16
	s.Uppercase = true
	values, err = Generate(testEnv(nil), s, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"FF"}, values)
}

func TestIntegerScheme_Validation(t *testing.T) {
	s := NewIntegerScheme()
	s.Radix = 40
	assert.Equal(t, KeyRadixRange, s.Validate(testEnv(nil)).Key)

	s.Radix = 16
	s.GroupingSeparatorEnabled = true
	assert.Equal(t, KeyGroupingRadix, s.Validate(testEnv(nil)).Key)
}

func TestDecimalScheme_Formatting(t *testing.T) {
	s := NewDecimalScheme()
	s.MinValue, s.MaxValue = 1500.5, 1500.5
	s.DecimalSeparator = ","
	s.GroupingSeparatorEnabled = true
	s.GroupingSeparator = "."
	values, err := Generate(testEnv(nil), s, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.500,50"}, values)

	s.ShowTrailingZeros = false
	values, err = Generate(testEnv(nil), s, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.500,5"}, values)
}

func TestStringScheme_RespectsAlphabetAndLength(t *testing.T) {
	s := NewStringScheme()
	s.Alphabet = "01lIO|ab"
	s.RemoveLookAlikes = true
	s.MinLength, s.MaxLength = 2, 5

	values, err := Generate(testEnv(nil), s, 100)
	require.NoError(t, err)
	for _, v := range values {
		assert.GreaterOrEqual(t, len(v), 2)
		assert.LessOrEqual(t, len(v), 5)
		assert.Empty(t, strings.Trim(v, "ab"), v)
	}

	s.Alphabet = LookAlikeSymbols
	assert.Equal(t, KeyAlphabetEmpty, s.Validate(testEnv(nil)).Key)
}

func TestWordScheme_Capitalization(t *testing.T) {
	s := NewWordScheme()
	s.Words = []string{"hello world"}
	s.Capitalization = CapitalizationFirstLetter
	values, err := Generate(testEnv(nil), s, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello World"}, values)

	s.Capitalization = "shouting"
	assert.Equal(t, KeyCapitalizationUnknown, s.Validate(testEnv(nil)).Key)
}

func TestCapitalization_Transform(t *testing.T) {
	assert.Equal(t, "abc def", CapitalizationLower.Transform("aBc DEF", nil))
	assert.Equal(t, "ABC DEF", CapitalizationUpper.Transform("aBc DEF", nil))
	assert.Equal(t, "Abc def", CapitalizationSentence.Transform("aBc DEF", nil))
	assert.Equal(t, "Abc Def", CapitalizationFirstLetter.Transform("aBc DEF", nil))
	assert.Equal(t, "aBc DEF", CapitalizationRetain.Transform("aBc DEF", nil))
	assert.Equal(t, "", CapitalizationSentence.Transform("", nil))

	random := CapitalizationRandom.Transform("abcdefgh", testEnv(nil).Rand)
	assert.Equal(t, "abcdefgh", strings.ToLower(random))
}

func TestUUIDScheme_Formats(t *testing.T) {
	s := NewUUIDScheme()
	values, err := Generate(testEnv(nil), s, 3)
	require.NoError(t, err)
	for _, v := range values {
		require.True(t, strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`), v)
		id, err := uuid.Parse(strings.Trim(v, `"`))
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), id.Version())
	}

	s.Affix.Descriptor = ""
	s.AddDashes = false
	s.Uppercase = true
	s.Version = 7
	values, err = Generate(testEnv(nil), s, 1)
	require.NoError(t, err)
	assert.Len(t, values[0], 32)
	assert.Equal(t, strings.ToUpper(values[0]), values[0])
	id, err := uuid.Parse(values[0])
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	s.Version = 3
	assert.Equal(t, KeyUUIDVersion, s.Validate(testEnv(nil)).Key)
}
