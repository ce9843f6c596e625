package models

import (
	"encoding/json"
	"strings"
	"time"

	"house-designer/internal/common/apierr"
)

// ============================================================
// House Specification
// ============================================================

type Floor struct {
	Index       int     `json:"index"`
	FloorHeight float64 `json:"floorHeight"`
}

type HouseSpecification struct {
	ID                     string
	ProjectID              string
	ShapeType              HouseShapeType
	ShapeParameters        ShapeParameters
	RoofType               RoofType
	WallMaterial           MaterialSpecification
	RoofMaterial           MaterialSpecification
	FloorMaterial          MaterialSpecification
	MaterialCustomizations string
	NumFloors              int
	Floors                 []Floor
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// SpecificationInput — тело запроса на создание/обновление спецификации.
// Размеры формы приходят плоским набором полей.
type SpecificationInput struct {
	ShapeType string `json:"shapeType"`
	ShapeFields
	RoofType               string                 `json:"roofType"`
	WallMaterial           *MaterialSpecification `json:"wallMaterial,omitempty"`
	RoofMaterial           *MaterialSpecification `json:"roofMaterial,omitempty"`
	FloorMaterial          *MaterialSpecification `json:"floorMaterial,omitempty"`
	MaterialCustomizations string                 `json:"materialCustomizations"`
	NumFloors              int                    `json:"numFloors"`
	Floors                 []Floor                `json:"floors"`
}

// Apply заполняет spec из input целиком (замена, а не слияние).
// mode определяет, обязательны ли размеры формы.
func (in SpecificationInput) Apply(spec *HouseSpecification, mode DeriveMode) error {
	shapeType, err := ParseShapeType(in.ShapeType)
	if err != nil {
		return err
	}
	params, err := DeriveShapeParameters(shapeType, in.ShapeFields, mode)
	if err != nil {
		return err
	}

	roof := RoofType(strings.TrimSpace(in.RoofType))
	if roof == "" {
		roof = DefaultRoofType
	}
	if !roof.Valid() {
		return apierr.Validation("unknown roof type %q", in.RoofType)
	}

	wall := materialOrDefault(in.WallMaterial, DefaultWallMaterial())
	roofMat := materialOrDefault(in.RoofMaterial, DefaultRoofMaterial())
	floorMat := materialOrDefault(in.FloorMaterial, DefaultFloorMaterial())
	if err := wall.Validate("wall"); err != nil {
		return err
	}
	if err := roofMat.Validate("roof"); err != nil {
		return err
	}
	if err := floorMat.Validate("floor"); err != nil {
		return err
	}

	if in.MaterialCustomizations != "" && !json.Valid([]byte(in.MaterialCustomizations)) {
		return apierr.Validation("materialCustomizations must be valid JSON")
	}

	numFloors := in.NumFloors
	if numFloors == 0 {
		numFloors = 1
	}
	if numFloors < 1 {
		return apierr.Validation("numFloors must be at least 1")
	}
	for i, f := range in.Floors {
		if f.Index < 0 {
			return apierr.Validation("floors[%d]: index must be >= 0", i)
		}
		if f.FloorHeight <= 0 {
			return apierr.Validation("floors[%d]: floorHeight must be > 0", i)
		}
	}

	spec.ShapeType = shapeType
	spec.ShapeParameters = params
	spec.RoofType = roof
	spec.WallMaterial = wall
	spec.RoofMaterial = roofMat
	spec.FloorMaterial = floorMat
	spec.MaterialCustomizations = in.MaterialCustomizations
	spec.NumFloors = numFloors
	spec.Floors = append([]Floor{}, in.Floors...)
	return nil
}

func materialOrDefault(m *MaterialSpecification, def MaterialSpecification) MaterialSpecification {
	if m == nil {
		return def
	}
	return m.orDefault(def)
}

// ============================================================
// DTO
// ============================================================

type HouseSpecificationDTO struct {
	ID                     string                `json:"id"`
	ProjectID              string                `json:"projectId"`
	ShapeType              HouseShapeType        `json:"shapeType"`
	ShapeParameters        map[string]float64    `json:"shapeParameters"`
	RoofType               RoofType              `json:"roofType"`
	WallMaterial           MaterialSpecification `json:"wallMaterial"`
	RoofMaterial           MaterialSpecification `json:"roofMaterial"`
	FloorMaterial          MaterialSpecification `json:"floorMaterial"`
	MaterialCustomizations string                `json:"materialCustomizations"`
	NumFloors              int                   `json:"numFloors"`
	Floors                 []Floor               `json:"floors"`
	CreatedAt              time.Time             `json:"createdAt"`
	UpdatedAt              time.Time             `json:"updatedAt"`
}

func (s *HouseSpecification) DTO() HouseSpecificationDTO {
	floors := s.Floors
	if floors == nil {
		floors = []Floor{}
	}
	return HouseSpecificationDTO{
		ID:                     s.ID,
		ProjectID:              s.ProjectID,
		ShapeType:              s.ShapeType,
		ShapeParameters:        FlattenShapeParameters(s.ShapeParameters),
		RoofType:               s.RoofType,
		WallMaterial:           s.WallMaterial,
		RoofMaterial:           s.RoofMaterial,
		FloorMaterial:          s.FloorMaterial,
		MaterialCustomizations: s.MaterialCustomizations,
		NumFloors:              s.NumFloors,
		Floors:                 floors,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
}
