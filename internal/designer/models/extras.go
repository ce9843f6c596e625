package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"house-designer/internal/common/apierr"
)

// ============================================================
// Extras (doors & windows)
// ============================================================

type Scale struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Door struct {
	ID        string  `json:"id"`
	Wall      string  `json:"wall"`
	Position  float64 `json:"position"`
	Path      string  `json:"path"`
	Thumbnail string  `json:"thumbnail"`
	Scale     Scale   `json:"scale"`
}

type Window struct {
	ID        string  `json:"id"`
	Wall      string  `json:"wall"`
	Position  float64 `json:"position"`
	Position2 float64 `json:"position2"`
	Path      string  `json:"path"`
	Thumbnail string  `json:"thumbnail"`
	Scale     Scale   `json:"scale"`
}

type Extras struct {
	ID                    string    `json:"id"`
	HouseSpecificationsID string    `json:"houseSpecificationsId"`
	Doors                 []Door    `json:"doors"`
	Windows               []Window  `json:"windows"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// ExtrasInput — тело запроса; id у дверей и окон игнорируются.
type ExtrasInput struct {
	Doors   []Door   `json:"doors"`
	Windows []Window `json:"windows"`
}

// CopyOpenings проверяет проёмы и возвращает их копии с новыми id.
// Стена не сверяется с геометрией формы.
func CopyOpenings(doors []Door, windows []Window) ([]Door, []Window, error) {
	outDoors := make([]Door, 0, len(doors))
	for i, d := range doors {
		if err := validateOpening("doors", i, d.Wall, d.Position); err != nil {
			return nil, nil, err
		}
		d.ID = uuid.NewString()
		d.Wall = strings.TrimSpace(d.Wall)
		d.Scale = normalizeScale(d.Scale)
		outDoors = append(outDoors, d)
	}

	outWindows := make([]Window, 0, len(windows))
	for i, w := range windows {
		if err := validateOpening("windows", i, w.Wall, w.Position); err != nil {
			return nil, nil, err
		}
		if w.Position2 < 0 || w.Position2 > 1 {
			return nil, nil, apierr.Validation("windows[%d]: position2 must be within [0,1]", i)
		}
		w.ID = uuid.NewString()
		w.Wall = strings.TrimSpace(w.Wall)
		w.Scale = normalizeScale(w.Scale)
		outWindows = append(outWindows, w)
	}
	return outDoors, outWindows, nil
}

func validateOpening(kind string, i int, wall string, position float64) error {
	if strings.TrimSpace(wall) == "" {
		return apierr.Validation("%s[%d]: wall is required", kind, i)
	}
	if position < 0 || position > 1 {
		return apierr.Validation("%s[%d]: position must be within [0,1]", kind, i)
	}
	return nil
}

// normalizeScale заменяет нулевой масштаб на единичный.
func normalizeScale(s Scale) Scale {
	if s == (Scale{}) {
		return Scale{X: 1, Y: 1, Z: 1}
	}
	return s
}
