package osti

import (
	"time"

	"github.com/google/uuid"

	"github.com/karstenskyt/osti/dsl"
)

// TrainingElements lists the coaching framework elements of a session. Every
// category is independent and may be empty.
type TrainingElements struct {
	Technical     []string `json:"technical"`
	Tactical      []string `json:"tactical"`
	Physical      []string `json:"physical"`
	Social        []string `json:"social"`
	Psychological []string `json:"psychological"`
}

// SessionMetadata describes a session plan. Date is free text (a year, a
// season or a date) and is never parsed.
type SessionMetadata struct {
	Title           *string `json:"title"`
	Category        *string `json:"category"`
	Difficulty      *string `json:"difficulty"`
	Date            *string `json:"date"`
	Author          *string `json:"author"`
	TargetAgeGroup  *string `json:"target_age_group"`
	DurationMinutes *int    `json:"duration_minutes"`
	DesiredOutcome  *string `json:"desired_outcome"`
}

// Source records the document a plan was extracted from.
type Source struct {
	Filename            string     `json:"filename"`
	PageCount           int        `json:"page_count"`
	ExtractionTimestamp *time.Time `json:"extraction_timestamp"`
}

// SessionPlan is the root aggregate. Drills keep session order.
type SessionPlan struct {
	ID               uuid.UUID         `json:"id"`
	Metadata         SessionMetadata   `json:"metadata"`
	Drills           []DrillBlock      `json:"drills"`
	TrainingElements *TrainingElements `json:"training_elements"`
	Source           Source            `json:"source"`
	Extensions       []Extension       `json:"extensions"`
}

var TrainingElementsSchema = dsl.ObjectOf[TrainingElements]().
	Named("TrainingElements", "Coaching framework elements (Technical, Tactical, Physical, Social, Psychological).").
	Field("technical", stringList()).Default([]any{}).Describe("Technical skills and techniques").
	Field("tactical", stringList()).Default([]any{}).Describe("Tactical awareness and game understanding").
	Field("physical", stringList()).Default([]any{}).Describe("Physical attributes and demands").
	Field("social", stringList()).Default([]any{}).Describe("Social and communication skills").
	Field("psychological", stringList()).Default([]any{}).Describe("Psychological and mental attributes").
	MustBind()

var SessionMetadataSchema = dsl.ObjectOf[SessionMetadata]().
	Named("SessionMetadata", "Metadata about a session plan.").
	Field("title", optString()).Describe("Session plan title").
	Field("category", optString()).Describe("Category (e.g., 'Goalkeeping: General')").
	Field("difficulty", optString()).Describe("Difficulty level (e.g., 'Moderate')").
	Field("date", optString()).Describe("Session date, year, or season (e.g., '2023', '2023/24', 'Spring 2024')").
	Field("author", optString()).Describe("Author or organization").
	Field("target_age_group", optString()).Describe("Target age group").
	Field("duration_minutes", dsl.IntOf().Nullable()).Describe("Session duration in minutes").
	Field("desired_outcome", optString()).Describe("Session-level learning objective or desired outcome").
	MustBind()

var SourceSchema = dsl.ObjectOf[Source]().
	Named("Source", "Source document information.").
	Field("filename", dsl.StringOf()).Required().Describe("Original PDF filename").
	Field("page_count", dsl.IntOf()).Default(0).Describe("Number of pages in source PDF").
	Field("extraction_timestamp", dsl.TimeOf().Nullable()).Describe("When the extraction was performed").
	MustBind()

var SessionPlanSchema = dsl.ObjectOf[SessionPlan]().
	Named("SessionPlan", "Complete extracted session plan, the root OSTI resource.").
	Field("id", dsl.UUIDOf()).DefaultFunc(dsl.NewUUID).
	Field("metadata", dsl.SchemaOf(SessionMetadataSchema)).Required().
	Field("drills", dsl.ArrayOf(DrillBlockSchema)).Default([]any{}).Describe("Drill blocks in order").
	Field("training_elements", dsl.SchemaOf(TrainingElementsSchema).Nullable()).Describe("Session-level coaching framework elements (Technical, Tactical, Physical, Social, Psychological)").
	Field("source", dsl.SchemaOf(SourceSchema)).Required().
	Field("extensions", dsl.ArrayOf(ExtensionSchema)).Default([]any{}).Describe("FHIR-style extensions for custom data").
	MustBind()
