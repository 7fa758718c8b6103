// Package model defines the plain data types shared by every optimizer
// component: trucks, boxes, voids, placements, configuration, and results.
// Nothing in this package performs geometry or search; see internal/geometry,
// internal/voidmgr, internal/engine, and internal/mcts for that.
package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/fleetpack/truckload/internal/geometry"
)

// TemperatureZone is the temperature class a box requires.
type TemperatureZone int

const (
	ZoneRegular TemperatureZone = iota
	ZoneCold
	ZoneFrozen
)

func (z TemperatureZone) String() string {
	switch z {
	case ZoneCold:
		return "Cold"
	case ZoneFrozen:
		return "Frozen"
	default:
		return "Regular"
	}
}

func (z TemperatureZone) valid() bool {
	return z == ZoneRegular || z == ZoneCold || z == ZoneFrozen
}

// Destination is the delivery stop a box is bound for. Stop1 is unloaded
// first.
type Destination int

const (
	Stop1 Destination = iota
	Stop2
	Stop3
	Stop4
)

func (d Destination) String() string {
	switch d {
	case Stop1:
		return "Stop1"
	case Stop2:
		return "Stop2"
	case Stop3:
		return "Stop3"
	case Stop4:
		return "Stop4"
	default:
		return "Unknown"
	}
}

func (d Destination) valid() bool {
	return d == Stop1 || d == Stop2 || d == Stop3 || d == Stop4
}

// Rank returns the LIFO ordinal used by the scorer and the loading-sequence
// generator: Stop4 (unloaded last) ranks 0, Stop1 (unloaded first) ranks 3.
func (d Destination) Rank() int {
	switch d {
	case Stop4:
		return 0
	case Stop3:
		return 1
	case Stop2:
		return 2
	default:
		return 3
	}
}

// TruckDimensions describes the cargo box of the truck. The floor is y=0,
// the rear loading door is the +z face.
type TruckDimensions struct {
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Height float64 `json:"height"`
}

// AABB returns the truck's interior as an axis-aligned bounding box:
// [-width/2, width/2] x [0, height] x [-length/2, length/2].
func (t TruckDimensions) AABB() geometry.AABB {
	return geometry.AABB{
		Center: geometry.Vec3{X: 0, Y: t.Height / 2, Z: 0},
		Half:   geometry.Vec3{X: t.Width / 2, Y: t.Height / 2, Z: t.Length / 2},
	}
}

func (t TruckDimensions) valid() bool {
	v := geometry.Vec3{X: t.Width, Y: t.Length, Z: t.Height}
	return v.Finite() && t.Width > 0 && t.Length > 0 && t.Height > 0
}

// Validate checks the truck precondition rules of §7.
func (t TruckDimensions) Validate() error {
	if !t.valid() {
		return &InvalidInputError{Field: "truck", Index: -1}
	}
	return nil
}

// Box is an unplaced unit of cargo, identified by a unique ID.
type Box struct {
	ID              string          `json:"id"`
	Label           string          `json:"label"`
	Width           float64         `json:"width"`
	Height          float64         `json:"height"`
	Length          float64         `json:"length"`
	Weight          float64         `json:"weight"`
	TemperatureZone TemperatureZone `json:"temperature_zone"`
	IsFragile       bool            `json:"is_fragile"`
	Destination     Destination     `json:"destination"`
}

// NewBox constructs a Box with a fresh ID, mirroring the teacher's
// NewPart constructor.
func NewBox(label string, width, height, length, weight float64, zone TemperatureZone, fragile bool, dest Destination) Box {
	return Box{
		ID:              uuid.New().String()[:8],
		Label:           label,
		Width:           width,
		Height:          height,
		Length:          length,
		Weight:          weight,
		TemperatureZone: zone,
		IsFragile:       fragile,
		Destination:     dest,
	}
}

// Validate checks the precondition-violation rules of §7: non-finite or
// non-positive extents/weight, or an unrecognized zone/destination tag.
// index is the box's position in the caller's input slice, used only to
// build a useful InvalidInputError.
func (b Box) Validate(index int) error {
	dims := geometry.Vec3{X: b.Width, Y: b.Height, Z: b.Length}
	if !dims.Finite() {
		return &InvalidInputError{Field: "width/height/length", Index: index}
	}
	if b.Width <= 0 {
		return &InvalidInputError{Field: "width", Index: index}
	}
	if b.Height <= 0 {
		return &InvalidInputError{Field: "height", Index: index}
	}
	if b.Length <= 0 {
		return &InvalidInputError{Field: "length", Index: index}
	}
	if !isFinite(b.Weight) || b.Weight <= 0 {
		return &InvalidInputError{Field: "weight", Index: index}
	}
	if !b.TemperatureZone.valid() {
		return &InvalidInputError{Field: "temperatureZone", Index: index}
	}
	if !b.Destination.valid() {
		return &InvalidInputError{Field: "destination", Index: index}
	}
	return nil
}

func isFinite(f float64) bool {
	return geometry.Vec3{X: f, Y: 0, Z: 0}.Finite()
}

// PlacedBox is a Box that has been assigned a position and orientation.
type PlacedBox struct {
	Box         Box                  `json:"box"`
	Position    geometry.Vec3        `json:"position"` // center of the box's AABB
	Orientation geometry.Orientation `json:"orientation"`
}

// Extents returns the box's effective world-space (x, y, z) size under its
// chosen orientation.
func (p PlacedBox) Extents() geometry.Vec3 {
	return p.Orientation.Extents(p.Box.Width, p.Box.Height, p.Box.Length)
}

// AABB returns the placed box's bounding box.
func (p PlacedBox) AABB() geometry.AABB {
	return geometry.NewAABB(p.Position, p.Extents())
}

// Void is an empty axis-aligned cuboid tracked by the void manager.
type Void struct {
	ID      string        `json:"id"`
	Min     geometry.Vec3 `json:"min"` // lower corner
	Extents geometry.Vec3 `json:"extents"`
}

// NewVoid constructs a Void with a fresh ID.
func NewVoid(min, extents geometry.Vec3) Void {
	return Void{ID: uuid.New().String()[:8], Min: min, Extents: extents}
}

// AABB returns the void's bounding box.
func (v Void) AABB() geometry.AABB {
	return geometry.FromMinExtents(v.Min, v.Extents)
}

// Volume returns the void's volume.
func (v Void) Volume() float64 {
	return v.Extents.X * v.Extents.Y * v.Extents.Z
}

// Center returns the void's AABB center, used as a key by the void sort
// orders.
func (v Void) Center() geometry.Vec3 {
	return v.AABB().Center
}

// Scores are the three post-placement metrics, each in [0, 100].
type Scores struct {
	Stability   float64 `json:"stability"`
	Safety      float64 `json:"safety"`
	Utilization float64 `json:"utilization"`
}

// PlacementResult is the output of a single optimize call.
type PlacementResult struct {
	Placed              []PlacedBox `json:"placed"`
	Unplaced            []Box       `json:"unplaced"`
	Scores              Scores      `json:"scores"`
	LoadingSequence     []PlacedBox `json:"loading_sequence"`
	MCTSBudgetExhausted bool        `json:"mcts_budget_exhausted,omitempty"`
}

// ZoneOffsets controls where the temperature zone boundaries sit, measured
// as a distance from the truck's rear (+z) door.
type ZoneOffsets struct {
	Frozen float64 `json:"frozen"` // frozen zone depth from the rear door
	Cold   float64 `json:"cold"`   // cold zone boundary distance from the rear door
}

// ProgressObserver is invoked between batches of placement by the packer
// and between iterations by the MCTS refiner. It must never be relied on
// for correctness (§9).
type ProgressObserver interface {
	OnProgress(fraction float64, placedCount int)
}

// OptimizerConfig holds every tunable knob of §6, each with the documented
// default supplied by DefaultConfig.
type OptimizerConfig struct {
	MaxWeight           float64          `json:"max_weight"`
	SupportRatio        float64          `json:"support_ratio"`
	FragileSupportRatio float64          `json:"fragile_support_ratio"`
	Epsilon             float64          `json:"epsilon"`
	MaxVoids            int              `json:"max_voids"`
	MCTSEnabled         bool             `json:"mcts_enabled"`
	MCTSThreshold       int              `json:"mcts_threshold"`
	MCTSIterations      int              `json:"mcts_iterations"`
	MCTSSeed            int64            `json:"mcts_seed"`
	ZoneOffsets         ZoneOffsets      `json:"zone_offsets"`
	Observer            ProgressObserver `json:"-"`
}

// DefaultConfig returns the §6 default configuration.
func DefaultConfig() OptimizerConfig {
	return OptimizerConfig{
		MaxWeight:           34000,
		SupportRatio:        0.3,
		FragileSupportRatio: 0.7,
		Epsilon:             0.01,
		MaxVoids:            100,
		MCTSEnabled:         true,
		MCTSThreshold:       15,
		MCTSIterations:      150,
		MCTSSeed:            42,
		ZoneOffsets:         ZoneOffsets{Frozen: 4, Cold: 8},
	}
}

// InvalidInputError reports a precondition violation (§7): a rejected box
// or truck, identified by field name and the index it came from in the
// caller's input slice (-1 when the offending value isn't box-indexed).
type InvalidInputError struct {
	Field string
	Index int
}

func (e *InvalidInputError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid input: field %q", e.Field)
	}
	return fmt.Sprintf("invalid input: field %q at index %d", e.Field, e.Index)
}
