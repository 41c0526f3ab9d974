package osti

import (
	"github.com/google/uuid"

	"github.com/karstenskyt/osti/dsl"
)

// DrillSetup is the setup information of a drill block.
type DrillSetup struct {
	Description    string   `json:"description"`
	PlayerCount    *string  `json:"player_count"`
	Equipment      []string `json:"equipment"`
	AreaDimensions *string  `json:"area_dimensions"`
}

// AdditionalSection keeps a drill section whose header does not map to a
// canonical field; Title is the header text as found in the source.
type AdditionalSection struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// TacticalContext tags a drill with its tactical methodology. Lanes may
// repeat and carry no order.
type TacticalContext struct {
	GameElement        *GameElement   `json:"game_element"`
	Lanes              []LaneName     `json:"lanes"`
	SituationType      *SituationType `json:"situation_type"`
	PhaseOfPlay        *string        `json:"phase_of_play"`
	NumericalAdvantage *string        `json:"numerical_advantage"`
}

// DrillBlock is one exercise within a session plan. ID is generated when the
// input omits it.
type DrillBlock struct {
	ID                 uuid.UUID           `json:"id"`
	Name               string              `json:"name"`
	Setup              DrillSetup          `json:"setup"`
	Diagram            DiagramInfo         `json:"diagram"`
	Sequence           []string            `json:"sequence"`
	Rules              []string            `json:"rules"`
	Scoring            []string            `json:"scoring"`
	CoachingPoints     []string            `json:"coaching_points"`
	Progressions       []string            `json:"progressions"`
	Regressions        []string            `json:"regressions"`
	Author             *string             `json:"author"`
	DrillType          *string             `json:"drill_type"`
	Directional        *bool               `json:"directional"`
	AdditionalSections []AdditionalSection `json:"additional_sections"`
	TacticalContext    *TacticalContext    `json:"tactical_context"`
	Extensions         []Extension         `json:"extensions"`
}

func stringList() dsl.AnyAdapter { return dsl.ArrayOf(dsl.String()) }

func emptyObject() any { return map[string]any{} }

var DrillSetupSchema = dsl.ObjectOf[DrillSetup]().
	Named("DrillSetup", "Setup information for a drill block.").
	Field("description", dsl.StringOf()).Default("").Describe("Setup description text").
	Field("player_count", optString()).Describe("Number/description of players (e.g., '1 GK + 6 field players')").
	Field("equipment", stringList()).Default([]any{}).Describe("Required equipment").
	Field("area_dimensions", optString()).Describe("Playing area dimensions (e.g., '20x15 yards')").
	MustBind()

var AdditionalSectionSchema = dsl.ObjectOf[AdditionalSection]().
	Named("AdditionalSection", "A drill section with a non-standard header that doesn't map to a canonical field.").
	Field("title", dsl.StringOf()).Required().Describe("Original section header text as found in the source").
	Field("content", stringList()).Default([]any{}).Describe("Section content as list items").
	MustBind()

var TacticalContextSchema = dsl.ObjectOf[TacticalContext]().
	Named("TacticalContext", "Tactical methodology context of a drill.").
	Field("game_element", dsl.SchemaOf[GameElement](gameElementEnum).Nullable()).Describe("Moment of the game the drill trains").
	Field("lanes", dsl.ArrayOf[LaneName](laneNameEnum)).Default([]any{}).Describe("Pitch corridors the drill uses").
	Field("situation_type", dsl.SchemaOf[SituationType](situationTypeEnum).Nullable()).Describe("Opposition structure").
	Field("phase_of_play", optString()).Describe("Phase of play the drill reproduces").
	Field("numerical_advantage", optString()).Describe("Numerical relation, e.g. '3v2'").
	MustBind()

var DrillBlockSchema = dsl.ObjectOf[DrillBlock]().
	Named("DrillBlock", "A single drill/exercise within a session plan.").
	Field("id", dsl.UUIDOf()).DefaultFunc(dsl.NewUUID).
	Field("name", dsl.StringOf()).Required().Describe("Drill name (e.g., 'Coach-Goalkeeper(s)')").
	Field("setup", dsl.SchemaOf(DrillSetupSchema)).DefaultFunc(emptyObject).
	Field("diagram", dsl.SchemaOf(DiagramInfoSchema)).DefaultFunc(emptyObject).
	Field("sequence", stringList()).Default([]any{}).Describe("Numbered execution steps").
	Field("rules", stringList()).Default([]any{}).Describe("Rules and constraints").
	Field("scoring", stringList()).Default([]any{}).Describe("Scoring criteria").
	Field("coaching_points", stringList()).Default([]any{}).Describe("Key coaching observations").
	Field("progressions", stringList()).Default([]any{}).Describe("Progression variations").
	Field("regressions", stringList()).Default([]any{}).Describe("Regression / simplification variations").
	Field("author", optString()).Describe("Author or coach for this drill (when different from session author)").
	Field("drill_type", optString()).Describe("Practice structure (e.g., 'Warm-Up', 'Technical Drill', 'Game-Related Practice', 'Small-Sided Game', 'Phase of Play')").
	Field("directional", dsl.BoolOf().Nullable()).Describe("Whether the drill has a primary direction of attack").
	Field("additional_sections", dsl.ArrayOf(AdditionalSectionSchema)).Default([]any{}).Describe("Sections with non-standard headers not mapped to canonical fields").
	Field("tactical_context", dsl.SchemaOf(TacticalContextSchema).Nullable()).Describe("Tactical methodology context").
	Field("extensions", dsl.ArrayOf(ExtensionSchema)).Default([]any{}).Describe("FHIR-style extensions for custom data").
	MustBind()
