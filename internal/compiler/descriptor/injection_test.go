package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spring-attic/spring-native-aot/internal/compiler/types"
)

type injectionPoint struct {
	declaring string
	member    string
	required  bool
}

func describePoints(points []MemberDescriptor) []injectionPoint {
	result := make([]injectionPoint, len(points))
	for i, p := range points {
		result[i] = injectionPoint{p.Member.DeclaringClass().SimpleName(), p.Member.MemberName(), p.Required}
	}
	return result
}

func TestScanOrdersAncestorsFirst(t *testing.T) {
	f := sampleFactory(t)
	core, logs := observer.New(zap.InfoLevel)
	scanner := NewInjectionPointScanner(f.ClassPath(), zap.New(core))

	points := scanner.Scan(lookup(t, f, "com.example.InjectionSample"))

	assert.Equal(t, []injectionPoint{
		{"InjectionBase", "base", true},
		{"InjectionSample", "name", true},
		{"InjectionSample", "provider", false},
		{"InjectionSample", "setOptional", false},
		{"InjectionSample", "setBase", true},
	}, describePoints(points))

	require.NotNil(t, points[0].Field())
	assert.Nil(t, points[0].Method())
	require.NotNil(t, points[4].Method())
	assert.Nil(t, points[4].Field())

	assert.Equal(t, 2, logs.FilterField(zap.String("class", "com.example.InjectionSample")).Len())
}

func TestScanIsStable(t *testing.T) {
	f := sampleFactory(t)
	scanner := NewInjectionPointScanner(f.ClassPath(), nil)
	c := lookup(t, f, "com.example.InjectionSample")

	first := describePoints(scanner.Scan(c))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, describePoints(scanner.Scan(c)))
	}
}

func TestScanMetaAnnotatedMarker(t *testing.T) {
	cp := types.NewClassPath()
	require.NoError(t, cp.Add(&types.Class{
		Name:        "com.example.Inject",
		Kind:        types.KindAnnotation,
		Annotations: types.Annotations{{Type: types.AutowiredAnnotation}},
	}))
	require.NoError(t, cp.Add(&types.Class{
		Name: "com.example.Target",
		Fields: []*types.Field{
			{Name: "dependency", Type: stringType, Annotations: types.Annotations{{Type: "com.example.Inject"}}},
			{Name: "optional", Type: types.MustParseType(types.OptionalClass + "<java.lang.String>"), Annotations: types.Annotations{{Type: types.JakartaInjectAnnotation}}},
		},
	}))
	c, _ := cp.Lookup("com.example.Target")

	points := NewInjectionPointScanner(cp, nil).Scan(c)
	assert.Equal(t, []injectionPoint{
		{"Target", "dependency", true},
		{"Target", "optional", false},
	}, describePoints(points))
}

func TestScanWithoutMarkers(t *testing.T) {
	f := sampleFactory(t)
	points := NewInjectionPointScanner(f.ClassPath(), nil).Scan(lookup(t, f, "com.example.Lifecycle"))
	assert.Empty(t, points)
}
