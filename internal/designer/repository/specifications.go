package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"house-designer/internal/common/apierr"
	"house-designer/internal/designer/models"
)

// ============================================================
// House Specifications
// ============================================================

type SpecificationRepo struct {
	db *sql.DB
}

func NewSpecificationRepo(db *sql.DB) *SpecificationRepo {
	return &SpecificationRepo{db: db}
}

const specificationColumns = `id, project_id, shape_type, shape_parameters, roof_type,
        wall_material, roof_material, floor_material, material_customizations,
        num_floors, floors, created_at, updated_at`

// specificationRow — сериализованное представление спецификации.
type specificationRow struct {
	shapeParameters string
	wall            string
	roof            string
	floor           string
	floors          string
}

func encodeSpecification(s *models.HouseSpecification) (specificationRow, error) {
	var row specificationRow
	var err error
	if row.shapeParameters, err = encodeJSON(models.FlattenShapeParameters(s.ShapeParameters)); err != nil {
		return row, err
	}
	if row.wall, err = encodeJSON(s.WallMaterial); err != nil {
		return row, err
	}
	if row.roof, err = encodeJSON(s.RoofMaterial); err != nil {
		return row, err
	}
	if row.floor, err = encodeJSON(s.FloorMaterial); err != nil {
		return row, err
	}
	floors := s.Floors
	if floors == nil {
		floors = []models.Floor{}
	}
	if row.floors, err = encodeJSON(floors); err != nil {
		return row, err
	}
	return row, nil
}

func (r *SpecificationRepo) Add(ctx context.Context, s *models.HouseSpecification) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	ts := now()
	s.CreatedAt, s.UpdatedAt = ts, ts

	enc, err := encodeSpecification(s)
	if err != nil {
		return fmt.Errorf("encode specification: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO house_specifications (`+specificationColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, s.ID, s.ProjectID, string(s.ShapeType), enc.shapeParameters, string(s.RoofType),
		enc.wall, enc.roof, enc.floor, s.MaterialCustomizations,
		s.NumFloors, enc.floors, formatTime(ts), formatTime(ts))
	if err != nil {
		return fmt.Errorf("insert specification: %w", err)
	}
	return nil
}

// Get возвращает первую спецификацию, подходящую под фильтр.
func (r *SpecificationRepo) Get(ctx context.Context, filter models.SpecificationFilter) (*models.HouseSpecification, error) {
	where, args := whereClause("id", filter.ID, "project_id", filter.ProjectID)
	row := r.db.QueryRowContext(ctx, `SELECT `+specificationColumns+` FROM house_specifications`+where+` ORDER BY created_at, id LIMIT 1`, args...)
	s, err := scanSpecification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("house specification")
	}
	return s, err
}

func (r *SpecificationRepo) GetAll(ctx context.Context, filter models.SpecificationFilter) ([]models.HouseSpecification, error) {
	where, args := whereClause("id", filter.ID, "project_id", filter.ProjectID)
	rows, err := r.db.QueryContext(ctx, `SELECT `+specificationColumns+` FROM house_specifications`+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.HouseSpecification{}
	for rows.Next() {
		s, err := scanSpecification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *SpecificationRepo) Update(ctx context.Context, s *models.HouseSpecification) error {
	s.UpdatedAt = now()
	enc, err := encodeSpecification(s)
	if err != nil {
		return fmt.Errorf("encode specification: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
        UPDATE house_specifications SET
            shape_type = ?, shape_parameters = ?, roof_type = ?,
            wall_material = ?, roof_material = ?, floor_material = ?,
            material_customizations = ?, num_floors = ?, floors = ?, updated_at = ?
        WHERE id = ?
    `, string(s.ShapeType), enc.shapeParameters, string(s.RoofType),
		enc.wall, enc.roof, enc.floor,
		s.MaterialCustomizations, s.NumFloors, enc.floors, formatTime(s.UpdatedAt), s.ID)
	if err != nil {
		return fmt.Errorf("update specification: %w", err)
	}
	if n, err := rowsAffected(res); err != nil {
		return err
	} else if n == 0 {
		return apierr.NotFound("house specification")
	}
	return nil
}

func (r *SpecificationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM house_specifications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete specification: %w", err)
	}
	if n, err := rowsAffected(res); err != nil {
		return err
	} else if n == 0 {
		return apierr.NotFound("house specification")
	}
	return nil
}

func scanSpecification(row rowScanner) (*models.HouseSpecification, error) {
	var s models.HouseSpecification
	var shapeType, roofType, createdAt, updatedAt string
	var enc specificationRow
	if err := row.Scan(&s.ID, &s.ProjectID, &shapeType, &enc.shapeParameters, &roofType,
		&enc.wall, &enc.roof, &enc.floor, &s.MaterialCustomizations,
		&s.NumFloors, &enc.floors, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	s.ShapeType = models.HouseShapeType(shapeType)
	s.RoofType = models.RoofType(roofType)
	s.CreatedAt = parseTime(createdAt)
	s.UpdatedAt = parseTime(updatedAt)

	var flat map[string]float64
	if err := decodeJSON(enc.shapeParameters, &flat); err != nil {
		return nil, fmt.Errorf("decode shape parameters: %w", err)
	}
	params, err := models.DeriveShapeParameters(s.ShapeType, models.ShapeFieldsFromMap(flat), models.DeriveLenient)
	if err != nil {
		return nil, fmt.Errorf("specification %s: %w", s.ID, err)
	}
	s.ShapeParameters = params

	for _, m := range []struct {
		raw string
		dst *models.MaterialSpecification
	}{{enc.wall, &s.WallMaterial}, {enc.roof, &s.RoofMaterial}, {enc.floor, &s.FloorMaterial}} {
		if err := decodeJSON(m.raw, m.dst); err != nil {
			return nil, fmt.Errorf("decode material: %w", err)
		}
	}
	if err := decodeJSON(enc.floors, &s.Floors); err != nil {
		return nil, fmt.Errorf("decode floors: %w", err)
	}
	return &s, nil
}
