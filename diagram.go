package osti

import (
	"github.com/karstenskyt/osti/dsl"
	"github.com/karstenskyt/osti/schema"
)

// PitchView describes the pitch dimensions and view type of a diagram.
// Orientation is an open string ("vertical" or "horizontal" by convention).
type PitchView struct {
	ViewType     PitchViewType `json:"view_type"`
	LengthMeters *float64      `json:"length_meters"`
	WidthMeters  *float64      `json:"width_meters"`
	Orientation  string        `json:"orientation"`
}

// MovementArrow is a structured movement arrow on a diagram.
type MovementArrow struct {
	StartX         float64   `json:"start_x"`
	StartY         float64   `json:"start_y"`
	EndX           float64   `json:"end_x"`
	EndY           float64   `json:"end_y"`
	ArrowType      ArrowType `json:"arrow_type"`
	FromLabel      *string   `json:"from_label"`
	ToLabel        *string   `json:"to_label"`
	SequenceNumber *int      `json:"sequence_number"`
	Label          *string   `json:"label"`
}

// EquipmentObject is a piece of equipment placed on a diagram. X2/Y2 carry the
// second point of gates and lines.
type EquipmentObject struct {
	EquipmentType EquipmentType `json:"equipment_type"`
	X             float64       `json:"x"`
	Y             float64       `json:"y"`
	X2            *float64      `json:"x2"`
	Y2            *float64      `json:"y2"`
	Label         *string       `json:"label"`
	Color         *string       `json:"color"`
}

// GoalInfo is a goal on a diagram.
type GoalInfo struct {
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	GoalType    string   `json:"goal_type"`
	WidthMeters *float64 `json:"width_meters"`
}

// BallPosition is a ball on a diagram.
type BallPosition struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label *string `json:"label"`
}

// PitchZone is a marked rectangle given by its top-left and bottom-right
// corners.
type PitchZone struct {
	ZoneType string  `json:"zone_type"`
	X1       float64 `json:"x1"`
	Y1       float64 `json:"y1"`
	X2       float64 `json:"x2"`
	Y2       float64 `json:"y2"`
	Label    *string `json:"label"`
	Color    *string `json:"color"`
}

// PlayerPosition places a labeled player on a diagram. Labels are free-form
// and need not be unique.
type PlayerPosition struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Role  *string `json:"role"`
	Color *string `json:"color"`
}

// DiagramInfo aggregates everything extracted from one drill diagram.
type DiagramInfo struct {
	ImageRef        *string           `json:"image_ref"`
	Description     string            `json:"description"`
	PlayerPositions []PlayerPosition  `json:"player_positions"`
	PitchView       *PitchView        `json:"pitch_view"`
	Arrows          []MovementArrow   `json:"arrows"`
	Equipment       []EquipmentObject `json:"equipment"`
	Goals           []GoalInfo        `json:"goals"`
	Balls           []BallPosition    `json:"balls"`
	Zones           []PitchZone       `json:"zones"`
	Extensions      []Extension       `json:"extensions"`
}

// PageAnnotation describes one source page, which may hold zero, one or
// several diagrams.
type PageAnnotation struct {
	PageDescription string        `json:"page_description"`
	HasDiagram      bool          `json:"has_diagram"`
	Diagrams        []DiagramInfo `json:"diagrams"`
}

func coordinateRangeEnabled(o schema.ParseOpt) bool { return o.Strictness.CoordinateRange }

// coord is a percentage coordinate, range-checked under
// Strictness.CoordinateRange.
func coord() dsl.AnyAdapter { return dsl.FloatOf().InRange(0, 100, coordinateRangeEnabled) }

func optString() dsl.AnyAdapter { return dsl.StringOf().Nullable() }

var PitchViewSchema = dsl.ObjectOf[PitchView]().
	Named("PitchView", "Pitch dimensions and view type for the diagram.").
	Field("view_type", dsl.SchemaOf[PitchViewType](pitchViewTypeEnum)).Default(string(HalfPitch)).Describe("What part of pitch is shown").
	Field("length_meters", dsl.FloatOf().Nullable()).Describe("Length of visible area in meters").
	Field("width_meters", dsl.FloatOf().Nullable()).Describe("Width of visible area in meters").
	Field("orientation", dsl.StringOf()).Default("vertical").Describe("Orientation: 'vertical' or 'horizontal'").
	MustBind()

var MovementArrowSchema = dsl.ObjectOf[MovementArrow]().
	Named("MovementArrow", "A structured movement arrow on the diagram.").
	Field("start_x", coord()).Required().Describe("Start X coordinate (0-100)").
	Field("start_y", coord()).Required().Describe("Start Y coordinate (0-100)").
	Field("end_x", coord()).Required().Describe("End X coordinate (0-100)").
	Field("end_y", coord()).Required().Describe("End Y coordinate (0-100)").
	Field("arrow_type", dsl.SchemaOf[ArrowType](arrowTypeEnum)).Default(string(ArrowMovement)).Describe("Type of movement").
	Field("from_label", optString()).Describe("Label of the player/object at arrow start").
	Field("to_label", optString()).Describe("Label of the player/object at arrow end").
	Field("sequence_number", dsl.IntOf().Nullable()).Describe("Order in the drill sequence").
	Field("label", optString()).Describe("Text label on the arrow").
	MustBind()

var EquipmentObjectSchema = dsl.ObjectOf[EquipmentObject]().
	Named("EquipmentObject", "A piece of equipment placed on the diagram.").
	Field("equipment_type", dsl.SchemaOf[EquipmentType](equipmentTypeEnum)).Required().Describe("Type of equipment").
	Field("x", coord()).Required().Describe("X coordinate (0-100)").
	Field("y", coord()).Required().Describe("Y coordinate (0-100)").
	Field("x2", coord().Nullable()).Describe("End X for gates/lines (0-100)").
	Field("y2", coord().Nullable()).Describe("End Y for gates/lines (0-100)").
	Field("label", optString()).Describe("Text label").
	Field("color", optString()).Describe("Color of equipment").
	MustBind()

var GoalInfoSchema = dsl.ObjectOf[GoalInfo]().
	Named("GoalInfo", "A goal on the diagram.").
	Field("x", coord()).Required().Describe("X center coordinate (0-100)").
	Field("y", coord()).Required().Describe("Y center coordinate (0-100)").
	Field("goal_type", dsl.StringOf()).Default("full_goal").Describe("'full_goal', 'mini_goal', or 'target_goal'").
	Field("width_meters", dsl.FloatOf().Nullable()).Describe("Goal width in meters").
	MustBind()

var BallPositionSchema = dsl.ObjectOf[BallPosition]().
	Named("BallPosition", "A ball position on the diagram.").
	Field("x", coord()).Required().Describe("X coordinate (0-100)").
	Field("y", coord()).Required().Describe("Y coordinate (0-100)").
	Field("label", optString()).Describe("Text label").
	MustBind()

var PitchZoneSchema = dsl.ObjectOf[PitchZone]().
	Named("PitchZone", "A marked zone or area on the diagram.").
	Field("zone_type", dsl.StringOf()).Default("area").Describe("Zone type (e.g., 'area', 'channel', 'box')").
	Field("x1", coord()).Required().Describe("Top-left X coordinate (0-100)").
	Field("y1", coord()).Required().Describe("Top-left Y coordinate (0-100)").
	Field("x2", coord()).Required().Describe("Bottom-right X coordinate (0-100)").
	Field("y2", coord()).Required().Describe("Bottom-right Y coordinate (0-100)").
	Field("label", optString()).Describe("Zone label").
	Field("color", optString()).Describe("Zone color").
	MustBind()

var PlayerPositionSchema = dsl.ObjectOf[PlayerPosition]().
	Named("PlayerPosition", "Position of a player on the pitch diagram.").
	Field("label", dsl.StringOf()).Required().Describe("Player label (e.g., 'GK', 'A1', 'D1')").
	Field("x", coord()).Required().Describe("X coordinate (0-100, left to right)").
	Field("y", coord()).Required().Describe("Y coordinate (0-100, bottom to top)").
	Field("role", optString()).Describe("Role description (e.g., 'goalkeeper', 'attacker')").
	Field("color", optString()).Describe("Marker color (e.g., 'red', 'green', 'blue', 'yellow')").
	MustBind()

var DiagramInfoSchema = dsl.ObjectOf[DiagramInfo]().
	Named("DiagramInfo", "Information extracted from a drill diagram.").
	Field("image_ref", optString()).Describe("Path or URI to the diagram image").
	Field("description", dsl.StringOf()).Default("").Describe("Human-readable description of the diagram").
	Field("player_positions", dsl.ArrayOf(PlayerPositionSchema)).Default([]any{}).Describe("Player positions extracted from diagram").
	Field("pitch_view", dsl.SchemaOf(PitchViewSchema).Nullable()).Describe("Pitch view type and dimensions").
	Field("arrows", dsl.ArrayOf(MovementArrowSchema)).Default([]any{}).Describe("Structured movement arrows").
	Field("equipment", dsl.ArrayOf(EquipmentObjectSchema)).Default([]any{}).Describe("Equipment objects on the diagram").
	Field("goals", dsl.ArrayOf(GoalInfoSchema)).Default([]any{}).Describe("Goals on the diagram").
	Field("balls", dsl.ArrayOf(BallPositionSchema)).Default([]any{}).Describe("Ball positions on the diagram").
	Field("zones", dsl.ArrayOf(PitchZoneSchema)).Default([]any{}).Describe("Marked zones on the diagram").
	Field("extensions", dsl.ArrayOf(ExtensionSchema)).Default([]any{}).Describe("FHIR-style extensions for custom data").
	MustBind()

var PageAnnotationSchema = dsl.ObjectOf[PageAnnotation]().
	Named("PageAnnotation", "Annotation for a single page that may contain 0, 1, or multiple diagrams.").
	Field("page_description", dsl.StringOf()).Default("").Describe("Brief description of the page content").
	Field("has_diagram", dsl.BoolOf()).Default(false).Describe("Whether the page contains any soccer diagram").
	Field("diagrams", dsl.ArrayOf(DiagramInfoSchema)).Default([]any{}).Describe("List of diagrams found on this page (empty if none)").
	Refine("has-diagram-consistency", func(rc dsl.RuleCtx, p PageAnnotation) []schema.Issue {
		if !rc.Opt.Strictness.DiagramConsistency {
			return nil
		}
		if p.HasDiagram != (len(p.Diagrams) > 0) {
			return []schema.Issue{rc.Ref.Field("has_diagram").Issue(schema.CodeInconsistent,
				"other", "diagrams", "value", p.HasDiagram, "diagrams", len(p.Diagrams))}
		}
		return nil
	}).
	MustBind()
