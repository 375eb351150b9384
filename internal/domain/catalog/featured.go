package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/jr777pal/PetNest-India/internal/domain/model"

	"gopkg.in/yaml.v3"
)

//go:embed featured_pets.yaml
var featuredYAML []byte

type featuredPet struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Breed       string `yaml:"breed"`
	Age         int    `yaml:"age"`
	Gender      string `yaml:"gender"`
	Price       int64  `yaml:"price"`
	ImageURL    string `yaml:"image_url"`
	Description string `yaml:"description"`
}

type featuredFile struct {
	Pets []featuredPet `yaml:"pets"`
}

// 固定表示のペット。DBに行が無いものはチェックアウト時に作成される。
type Featured struct {
	pets []model.Pet
}

// 埋め込みのYAMLから読み込む
func LoadFeatured() (*Featured, error) {
	return ParseFeatured(featuredYAML)
}

func ParseFeatured(data []byte) (*Featured, error) {
	var f featuredFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse featured pets: %w", err)
	}

	pets := make([]model.Pet, 0, len(f.Pets))
	seen := make(map[string]struct{}, len(f.Pets))
	for i, p := range f.Pets {
		name := strings.TrimSpace(p.Name)
		if name == "" || p.Type == "" {
			return nil, fmt.Errorf("featured pet #%d: name and type are required", i)
		}
		if p.Price <= 0 {
			return nil, fmt.Errorf("featured pet %q: price must be positive", name)
		}
		key := p.Type + "/" + name
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("featured pet %q (%s) is duplicated", name, p.Type)
		}
		seen[key] = struct{}{}

		pets = append(pets, model.Pet{
			Name:        name,
			Type:        model.PetType(p.Type),
			Breed:       p.Breed,
			Age:         p.Age,
			Gender:      p.Gender,
			Price:       p.Price,
			ImageURL:    p.ImageURL,
			Description: p.Description,
			Available:   true,
		})
	}
	return &Featured{pets: pets}, nil
}

// 一覧のコピーを返す
func (f *Featured) List() []model.Pet {
	out := make([]model.Pet, len(f.pets))
	copy(out, f.pets)
	return out
}

// (name, type) の完全一致で探す
func (f *Featured) Lookup(name string, petType model.PetType) (model.Pet, bool) {
	for _, p := range f.pets {
		if p.Name == name && p.Type == petType {
			return p, true
		}
	}
	return model.Pet{}, false
}
