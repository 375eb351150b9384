package catalog

import (
	"cmp"
	"errors"
	"slices"
	"strings"

	"github.com/jr777pal/PetNest-India/internal/domain/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// 一覧の絞り込み・並び替え条件
type Filter struct {
	SortBy     string
	Age        string
	Gender     string
	PriceRange string
}

const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortAgeYoung  = "age-young"
	SortAgeOld    = "age-old"
	SortName      = "name"

	AgePuppy  = "puppy"
	AgeKitten = "kitten"
	AgeYoung  = "young"
	AgeAdult  = "adult"
	AgeSenior = "senior"

	PriceUpTo15000 = "0-15000"
	Price15To20000 = "15000-20000"
	PriceOver20000 = "20000+"

	All = "all"
)

var (
	ErrInvalidSort       = errors.New("invalid sort_by")
	ErrInvalidAge        = errors.New("invalid age")
	ErrInvalidPriceRange = errors.New("invalid price_range")
)

func (f Filter) Validate() error {
	switch f.SortBy {
	case "", SortPriceLow, SortPriceHigh, SortAgeYoung, SortAgeOld, SortName:
	default:
		return ErrInvalidSort
	}
	switch f.Age {
	case "", All, AgePuppy, AgeKitten, AgeYoung, AgeAdult, AgeSenior:
	default:
		return ErrInvalidAge
	}
	switch f.PriceRange {
	case "", All, PriceUpTo15000, Price15To20000, PriceOver20000:
	default:
		return ErrInvalidPriceRange
	}
	return nil
}

// 元のスライスは変更せず、絞り込み＆並び替えしたコピーを返す。
func Apply(pets []model.Pet, f Filter) []model.Pet {
	out := make([]model.Pet, 0, len(pets))
	for _, p := range pets {
		if matchGender(p, f.Gender) && matchAge(p, f.Age) && matchPrice(p, f.PriceRange) {
			out = append(out, p)
		}
	}

	if cmpFn := comparator(f.SortBy); cmpFn != nil {
		// 同値は入力順のまま
		slices.SortStableFunc(out, cmpFn)
	}
	return out
}

func matchGender(p model.Pet, gender string) bool {
	if gender == "" || gender == All {
		return true
	}
	return strings.EqualFold(p.Gender, gender)
}

func matchAge(p model.Pet, bucket string) bool {
	age := p.Age
	switch bucket {
	case AgePuppy, AgeKitten:
		return age <= 1
	case AgeYoung:
		return age > 1 && age <= 3
	case AgeAdult:
		return age > 3 && age <= 7
	case AgeSenior:
		return age > 7
	default:
		return true
	}
}

func matchPrice(p model.Pet, bucket string) bool {
	price := p.Price
	switch bucket {
	case PriceUpTo15000:
		return price <= 15000
	case Price15To20000:
		return price > 15000 && price <= 20000
	case PriceOver20000:
		return price > 20000
	default:
		return true
	}
}

func comparator(sortBy string) func(a, b model.Pet) int {
	switch sortBy {
	case SortPriceLow:
		return func(a, b model.Pet) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceHigh:
		return func(a, b model.Pet) int { return cmp.Compare(b.Price, a.Price) }
	case SortAgeYoung:
		return func(a, b model.Pet) int { return cmp.Compare(a.Age, b.Age) }
	case SortAgeOld:
		return func(a, b model.Pet) int { return cmp.Compare(b.Age, a.Age) }
	case SortName:
		c := collate.New(language.English)
		return func(a, b model.Pet) int { return c.CompareString(a.Name, b.Name) }
	default:
		return nil
	}
}
