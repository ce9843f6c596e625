package models

import (
	"regexp"
	"strings"

	"house-designer/internal/common/apierr"
)

// ============================================================
// Materials
// ============================================================

type MaterialType string

const (
	// стены
	MaterialBrick    MaterialType = "Brick"
	MaterialConcrete MaterialType = "Concrete"
	MaterialWood     MaterialType = "Wood"
	MaterialStone    MaterialType = "Stone"
	MaterialStucco   MaterialType = "Stucco"
	MaterialSiding   MaterialType = "Siding"
	// кровля
	MaterialShingles  MaterialType = "Shingles"
	MaterialMetal     MaterialType = "Metal"
	MaterialClayTiles MaterialType = "ClayTiles"
	MaterialSlate     MaterialType = "Slate"
	// пол
	MaterialHardwood MaterialType = "Hardwood"
	MaterialTile     MaterialType = "Tile"
	MaterialCarpet   MaterialType = "Carpet"
	MaterialLaminate MaterialType = "Laminate"
)

type MaterialCategory string

const (
	CategoryWall  MaterialCategory = "wall"
	CategoryRoof  MaterialCategory = "roof"
	CategoryFloor MaterialCategory = "floor"
)

var materialCategories = map[MaterialType]MaterialCategory{
	MaterialBrick:     CategoryWall,
	MaterialConcrete:  CategoryWall,
	MaterialWood:      CategoryWall,
	MaterialStone:     CategoryWall,
	MaterialStucco:    CategoryWall,
	MaterialSiding:    CategoryWall,
	MaterialShingles:  CategoryRoof,
	MaterialMetal:     CategoryRoof,
	MaterialClayTiles: CategoryRoof,
	MaterialSlate:     CategoryRoof,
	MaterialHardwood:  CategoryFloor,
	MaterialTile:      CategoryFloor,
	MaterialCarpet:    CategoryFloor,
	MaterialLaminate:  CategoryFloor,
}

// Category возвращает назначение материала; false для неизвестного типа.
func (m MaterialType) Category() (MaterialCategory, bool) {
	c, ok := materialCategories[m]
	return c, ok
}

type MaterialSpecification struct {
	Type        MaterialType `json:"type"`
	Color       string       `json:"color"`
	TexturePath string       `json:"texturePath"`
}

func DefaultWallMaterial() MaterialSpecification {
	return MaterialSpecification{Type: MaterialBrick, Color: "#B5651D", TexturePath: "textures/walls/brick.jpg"}
}

func DefaultRoofMaterial() MaterialSpecification {
	return MaterialSpecification{Type: MaterialShingles, Color: "#4A4A4A", TexturePath: "textures/roofs/shingles.jpg"}
}

func DefaultFloorMaterial() MaterialSpecification {
	return MaterialSpecification{Type: MaterialHardwood, Color: "#C19A6B", TexturePath: "textures/floors/hardwood.jpg"}
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate проверяет тип и цвет; slot используется только в сообщении об ошибке.
func (m MaterialSpecification) Validate(slot string) error {
	if _, ok := m.Type.Category(); !ok {
		return apierr.Validation("%s material: unknown type %q", slot, m.Type)
	}
	if !hexColor.MatchString(m.Color) {
		return apierr.Validation("%s material: color %q is not a hex color", slot, m.Color)
	}
	return nil
}

// orDefault подставляет значения по умолчанию для незаполненных полей.
func (m MaterialSpecification) orDefault(def MaterialSpecification) MaterialSpecification {
	if m.Type == "" {
		return def
	}
	if strings.TrimSpace(m.Color) == "" {
		m.Color = def.Color
	}
	return m
}

// ============================================================
// Roof Types
// ============================================================

type RoofType string

const (
	RoofFlat        RoofType = "Flat"
	RoofGable       RoofType = "Gable"
	RoofHip         RoofType = "Hip"
	RoofShed        RoofType = "Shed"
	RoofMansard     RoofType = "Mansard"
	RoofGambrel     RoofType = "Gambrel"
	RoofButterfly   RoofType = "Butterfly"
	RoofSaltbox     RoofType = "Saltbox"
	RoofPyramid     RoofType = "Pyramid"
	RoofDome        RoofType = "Dome"
	RoofBonnet      RoofType = "Bonnet"
	RoofSkillion    RoofType = "Skillion"
	RoofSawtooth    RoofType = "Sawtooth"
	RoofCurved      RoofType = "Curved"
	RoofJerkinhead  RoofType = "Jerkinhead"
	RoofDutchGable  RoofType = "DutchGable"
	RoofCrossGable  RoofType = "CrossGable"
	RoofCrossHipped RoofType = "CrossHipped"
	DefaultRoofType          = RoofGable
)

var RoofTypes = []RoofType{
	RoofFlat, RoofGable, RoofHip, RoofShed, RoofMansard, RoofGambrel,
	RoofButterfly, RoofSaltbox, RoofPyramid, RoofDome, RoofBonnet, RoofSkillion,
	RoofSawtooth, RoofCurved, RoofJerkinhead, RoofDutchGable, RoofCrossGable, RoofCrossHipped,
}

func (r RoofType) Valid() bool {
	for _, rt := range RoofTypes {
		if rt == r {
			return true
		}
	}
	return false
}
