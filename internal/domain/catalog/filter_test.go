package catalog

import (
	"testing"

	"github.com/jr777pal/PetNest-India/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePets() []model.Pet {
	return []model.Pet{
		{ID: "1", Name: "Bruno", Age: 1, Gender: "Male", Price: 12000},
		{ID: "2", Name: "Luna", Age: 3, Gender: "female", Price: 18000},
		{ID: "3", Name: "max", Age: 8, Gender: "male", Price: 25000},
		{ID: "4", Name: "Coco", Age: 5, Gender: "Female", Price: 15000},
		{ID: "5", Name: "Rocky", Age: 10, Gender: "male", Price: 20001},
		{ID: "6", Name: "Daisy", Age: 0, Gender: "female", Price: 20000},
	}
}

func ids(pets []model.Pet) []string {
	out := make([]string, 0, len(pets))
	for _, p := range pets {
		out = append(out, p.ID)
	}
	return out
}

func TestApply_PriceOver20000(t *testing.T) {
	got := Apply(samplePets(), Filter{PriceRange: PriceOver20000})

	require.NotEmpty(t, got)
	for _, p := range got {
		assert.Greater(t, p.Price, int64(20000))
	}
	assert.Equal(t, []string{"3", "5"}, ids(got))
}

func TestApply_PriceBuckets(t *testing.T) {
	assert.Equal(t, []string{"1", "4"}, ids(Apply(samplePets(), Filter{PriceRange: PriceUpTo15000})))
	assert.Equal(t, []string{"2", "6"}, ids(Apply(samplePets(), Filter{PriceRange: Price15To20000})))
}

func TestApply_Senior(t *testing.T) {
	got := Apply(samplePets(), Filter{Age: AgeSenior})

	require.NotEmpty(t, got)
	for _, p := range got {
		assert.Greater(t, p.Age, 7)
	}
}

func TestApply_AgeBuckets(t *testing.T) {
	assert.Equal(t, []string{"1", "6"}, ids(Apply(samplePets(), Filter{Age: AgePuppy})))
	assert.Equal(t, []string{"1", "6"}, ids(Apply(samplePets(), Filter{Age: AgeKitten})))
	assert.Equal(t, []string{"2"}, ids(Apply(samplePets(), Filter{Age: AgeYoung})))
	assert.Equal(t, []string{"4"}, ids(Apply(samplePets(), Filter{Age: AgeAdult})))
}

func TestApply_GenderCaseInsensitive(t *testing.T) {
	got := Apply(samplePets(), Filter{Gender: "MALE"})
	assert.Equal(t, []string{"1", "3", "5"}, ids(got))

	all := Apply(samplePets(), Filter{Gender: All})
	assert.Len(t, all, 6)
}

func TestApply_PriceSortsAreReversed(t *testing.T) {
	low := Apply(samplePets(), Filter{SortBy: SortPriceLow})
	high := Apply(samplePets(), Filter{SortBy: SortPriceHigh})

	require.Len(t, high, len(low))
	for i := range low {
		assert.Equal(t, low[i].ID, high[len(high)-1-i].ID)
	}
	assert.Equal(t, []string{"1", "4", "2", "6", "5", "3"}, ids(low))
}

func TestApply_AgeSorts(t *testing.T) {
	assert.Equal(t, []string{"6", "1", "2", "4", "3", "5"}, ids(Apply(samplePets(), Filter{SortBy: SortAgeYoung})))
	assert.Equal(t, []string{"5", "3", "4", "2", "1", "6"}, ids(Apply(samplePets(), Filter{SortBy: SortAgeOld})))
}

func TestApply_SortByName(t *testing.T) {
	got := Apply(samplePets(), Filter{SortBy: SortName})
	assert.Equal(t, []string{"Bruno", "Coco", "Daisy", "Luna", "max", "Rocky"}, names(got))
}

func names(pets []model.Pet) []string {
	out := make([]string, 0, len(pets))
	for _, p := range pets {
		out = append(out, p.Name)
	}
	return out
}

func TestApply_StableOnTies(t *testing.T) {
	pets := []model.Pet{
		{ID: "a", Price: 100},
		{ID: "b", Price: 50},
		{ID: "c", Price: 100},
		{ID: "d", Price: 50},
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(Apply(pets, Filter{SortBy: SortPriceLow})))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := samplePets()
	before := ids(in)

	_ = Apply(in, Filter{SortBy: SortPriceHigh, Gender: "male"})

	assert.Equal(t, before, ids(in))
}

func TestFilter_Validate(t *testing.T) {
	assert.NoError(t, Filter{}.Validate())
	assert.NoError(t, Filter{SortBy: SortName, Age: All, PriceRange: PriceOver20000}.Validate())
	assert.ErrorIs(t, Filter{SortBy: "cheapest"}.Validate(), ErrInvalidSort)
	assert.ErrorIs(t, Filter{Age: "old"}.Validate(), ErrInvalidAge)
	assert.ErrorIs(t, Filter{PriceRange: "1-2"}.Validate(), ErrInvalidPriceRange)
}
