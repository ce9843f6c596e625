package models

import (
	"fmt"
	"math"
	"strings"

	"house-designer/internal/common/apierr"
)

// ============================================================
// House Shape Types
// ============================================================

type HouseShapeType string

const (
	ShapeRectangular HouseShapeType = "Rectangular"
	ShapeSquare      HouseShapeType = "Square"
	ShapeL           HouseShapeType = "LShape"
	ShapeT           HouseShapeType = "TShape"
	ShapeU           HouseShapeType = "UShape"
)

// ShapeTypes перечисляет все поддерживаемые формы дома.
var ShapeTypes = []HouseShapeType{ShapeRectangular, ShapeSquare, ShapeL, ShapeT, ShapeU}

// ParseShapeType разбирает тег формы без учёта регистра ("lshape", "LShape").
func ParseShapeType(raw string) (HouseShapeType, error) {
	for _, st := range ShapeTypes {
		if strings.EqualFold(string(st), strings.TrimSpace(raw)) {
			return st, nil
		}
	}
	return "", apierr.UnsupportedShapeType(raw)
}

// ============================================================
// Shape Parameters (tagged union)
// ============================================================

// ShapeParameters реализуется только типами этого пакета; активный вариант
// всегда совпадает с ShapeType спецификации.
type ShapeParameters interface {
	ShapeType() HouseShapeType
	sealedShape()
}

type RectangularParams struct {
	Length float64
	Width  float64
}

type SquareParams struct {
	Size float64
}

type LShapeParams struct {
	MainLength      float64
	MainWidth       float64
	ExtensionLength float64
	ExtensionWidth  float64
}

type TShapeParams struct {
	MainLength  float64
	MainWidth   float64
	CrossLength float64
	CrossWidth  float64
}

type UShapeParams struct {
	BaseLength      float64
	BaseWidth       float64
	LeftWingLength  float64
	LeftWingWidth   float64
	RightWingLength float64
	RightWingWidth  float64
}

func (RectangularParams) ShapeType() HouseShapeType { return ShapeRectangular }
func (SquareParams) ShapeType() HouseShapeType      { return ShapeSquare }
func (LShapeParams) ShapeType() HouseShapeType      { return ShapeL }
func (TShapeParams) ShapeType() HouseShapeType      { return ShapeT }
func (UShapeParams) ShapeType() HouseShapeType      { return ShapeU }

func (RectangularParams) sealedShape() {}
func (SquareParams) sealedShape()      {}
func (LShapeParams) sealedShape()      {}
func (TShapeParams) sealedShape()      {}
func (UShapeParams) sealedShape()      {}

// ============================================================
// Flat field set
// ============================================================

// Ключи плоского представления параметров (совпадают с JSON полями ShapeFields).
const (
	KeyLength          = "length"
	KeyWidth           = "width"
	KeySize            = "size"
	KeyMainLength      = "mainLength"
	KeyMainWidth       = "mainWidth"
	KeyExtensionLength = "extensionLength"
	KeyExtensionWidth  = "extensionWidth"
	KeyCrossLength     = "crossLength"
	KeyCrossWidth      = "crossWidth"
	KeyBaseLength      = "baseLength"
	KeyBaseWidth       = "baseWidth"
	KeyLeftWingLength  = "leftWingLength"
	KeyLeftWingWidth   = "leftWingWidth"
	KeyRightWingLength = "rightWingLength"
	KeyRightWingWidth  = "rightWingWidth"
)

// ShapeFields — плоский набор необязательных размеров, как он приходит от клиента.
type ShapeFields struct {
	Length          *float64 `json:"length,omitempty"`
	Width           *float64 `json:"width,omitempty"`
	Size            *float64 `json:"size,omitempty"`
	MainLength      *float64 `json:"mainLength,omitempty"`
	MainWidth       *float64 `json:"mainWidth,omitempty"`
	ExtensionLength *float64 `json:"extensionLength,omitempty"`
	ExtensionWidth  *float64 `json:"extensionWidth,omitempty"`
	CrossLength     *float64 `json:"crossLength,omitempty"`
	CrossWidth      *float64 `json:"crossWidth,omitempty"`
	BaseLength      *float64 `json:"baseLength,omitempty"`
	BaseWidth       *float64 `json:"baseWidth,omitempty"`
	LeftWingLength  *float64 `json:"leftWingLength,omitempty"`
	LeftWingWidth   *float64 `json:"leftWingWidth,omitempty"`
	RightWingLength *float64 `json:"rightWingLength,omitempty"`
	RightWingWidth  *float64 `json:"rightWingWidth,omitempty"`
}

// ShapeFieldsFromMap строит ShapeFields из плоской карты; неизвестные ключи игнорируются.
func ShapeFieldsFromMap(m map[string]float64) ShapeFields {
	var f ShapeFields
	for key, ptr := range f.byKey() {
		if v, ok := m[key]; ok {
			*ptr = &v
		}
	}
	return f
}

func (f *ShapeFields) byKey() map[string]**float64 {
	return map[string]**float64{
		KeyLength:          &f.Length,
		KeyWidth:           &f.Width,
		KeySize:            &f.Size,
		KeyMainLength:      &f.MainLength,
		KeyMainWidth:       &f.MainWidth,
		KeyExtensionLength: &f.ExtensionLength,
		KeyExtensionWidth:  &f.ExtensionWidth,
		KeyCrossLength:     &f.CrossLength,
		KeyCrossWidth:      &f.CrossWidth,
		KeyBaseLength:      &f.BaseLength,
		KeyBaseWidth:       &f.BaseWidth,
		KeyLeftWingLength:  &f.LeftWingLength,
		KeyLeftWingWidth:   &f.LeftWingWidth,
		KeyRightWingLength: &f.RightWingLength,
		KeyRightWingWidth:  &f.RightWingWidth,
	}
}

// ============================================================
// Derive / Flatten
// ============================================================

// DeriveMode определяет, как обрабатываются отсутствующие размеры.
type DeriveMode int

const (
	// DeriveStrict — путь создания: все размеры формы обязательны.
	DeriveStrict DeriveMode = iota
	// DeriveLenient — путь обновления: отсутствующие размеры становятся 0.
	DeriveLenient
)

// DeriveShapeParameters выбирает вариант по shapeType и заполняет его из fields.
// Поля других форм игнорируются.
func DeriveShapeParameters(shapeType HouseShapeType, fields ShapeFields, mode DeriveMode) (ShapeParameters, error) {
	r := fieldReader{mode: mode}

	var params ShapeParameters
	switch shapeType {
	case ShapeRectangular:
		params = RectangularParams{
			Length: r.get(KeyLength, fields.Length),
			Width:  r.get(KeyWidth, fields.Width),
		}
	case ShapeSquare:
		params = SquareParams{
			Size: r.get(KeySize, fields.Size),
		}
	case ShapeL:
		params = LShapeParams{
			MainLength:      r.get(KeyMainLength, fields.MainLength),
			MainWidth:       r.get(KeyMainWidth, fields.MainWidth),
			ExtensionLength: r.get(KeyExtensionLength, fields.ExtensionLength),
			ExtensionWidth:  r.get(KeyExtensionWidth, fields.ExtensionWidth),
		}
	case ShapeT:
		params = TShapeParams{
			MainLength:  r.get(KeyMainLength, fields.MainLength),
			MainWidth:   r.get(KeyMainWidth, fields.MainWidth),
			CrossLength: r.get(KeyCrossLength, fields.CrossLength),
			CrossWidth:  r.get(KeyCrossWidth, fields.CrossWidth),
		}
	case ShapeU:
		params = UShapeParams{
			BaseLength:      r.get(KeyBaseLength, fields.BaseLength),
			BaseWidth:       r.get(KeyBaseWidth, fields.BaseWidth),
			LeftWingLength:  r.get(KeyLeftWingLength, fields.LeftWingLength),
			LeftWingWidth:   r.get(KeyLeftWingWidth, fields.LeftWingWidth),
			RightWingLength: r.get(KeyRightWingLength, fields.RightWingLength),
			RightWingWidth:  r.get(KeyRightWingWidth, fields.RightWingWidth),
		}
	default:
		return nil, apierr.UnsupportedShapeType(string(shapeType))
	}

	if err := r.err(shapeType); err != nil {
		return nil, err
	}
	return params, nil
}

// FlattenShapeParameters возвращает карту ключ→значение для активного варианта.
func FlattenShapeParameters(params ShapeParameters) map[string]float64 {
	switch p := params.(type) {
	case RectangularParams:
		return map[string]float64{KeyLength: p.Length, KeyWidth: p.Width}
	case SquareParams:
		return map[string]float64{KeySize: p.Size}
	case LShapeParams:
		return map[string]float64{
			KeyMainLength:      p.MainLength,
			KeyMainWidth:       p.MainWidth,
			KeyExtensionLength: p.ExtensionLength,
			KeyExtensionWidth:  p.ExtensionWidth,
		}
	case TShapeParams:
		return map[string]float64{
			KeyMainLength:  p.MainLength,
			KeyMainWidth:   p.MainWidth,
			KeyCrossLength: p.CrossLength,
			KeyCrossWidth:  p.CrossWidth,
		}
	case UShapeParams:
		return map[string]float64{
			KeyBaseLength:      p.BaseLength,
			KeyBaseWidth:       p.BaseWidth,
			KeyLeftWingLength:  p.LeftWingLength,
			KeyLeftWingWidth:   p.LeftWingWidth,
			KeyRightWingLength: p.RightWingLength,
			KeyRightWingWidth:  p.RightWingWidth,
		}
	case nil:
		return map[string]float64{}
	default:
		panic(fmt.Sprintf("models: unhandled shape parameters %T", params))
	}
}

type fieldReader struct {
	mode     DeriveMode
	missing  []string
	negative []string
}

func (r *fieldReader) get(key string, v *float64) float64 {
	if v == nil {
		if r.mode == DeriveStrict {
			r.missing = append(r.missing, key)
		}
		return 0
	}
	if *v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
		r.negative = append(r.negative, key)
	}
	return *v
}

func (r *fieldReader) err(shapeType HouseShapeType) error {
	if len(r.missing) > 0 {
		return apierr.Validation("%s requires %s", shapeType, strings.Join(r.missing, ", "))
	}
	if len(r.negative) > 0 {
		return apierr.Validation("%s must be non-negative finite numbers", strings.Join(r.negative, ", "))
	}
	return nil
}
