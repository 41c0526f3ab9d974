package osti

import (
	"context"
	"fmt"
	"io"

	"github.com/karstenskyt/osti/schema"
)

func ParseExtension(ctx context.Context, v any, opts ...schema.ParseOpt) (Extension, error) {
	return schema.Parse(ctx, ExtensionSchema, v, opts...)
}

func ParsePitchView(ctx context.Context, v any, opts ...schema.ParseOpt) (PitchView, error) {
	return schema.Parse(ctx, PitchViewSchema, v, opts...)
}

func ParseMovementArrow(ctx context.Context, v any, opts ...schema.ParseOpt) (MovementArrow, error) {
	return schema.Parse(ctx, MovementArrowSchema, v, opts...)
}

func ParseEquipmentObject(ctx context.Context, v any, opts ...schema.ParseOpt) (EquipmentObject, error) {
	return schema.Parse(ctx, EquipmentObjectSchema, v, opts...)
}

func ParseGoalInfo(ctx context.Context, v any, opts ...schema.ParseOpt) (GoalInfo, error) {
	return schema.Parse(ctx, GoalInfoSchema, v, opts...)
}

func ParseBallPosition(ctx context.Context, v any, opts ...schema.ParseOpt) (BallPosition, error) {
	return schema.Parse(ctx, BallPositionSchema, v, opts...)
}

func ParsePitchZone(ctx context.Context, v any, opts ...schema.ParseOpt) (PitchZone, error) {
	return schema.Parse(ctx, PitchZoneSchema, v, opts...)
}

func ParsePlayerPosition(ctx context.Context, v any, opts ...schema.ParseOpt) (PlayerPosition, error) {
	return schema.Parse(ctx, PlayerPositionSchema, v, opts...)
}

func ParseDiagramInfo(ctx context.Context, v any, opts ...schema.ParseOpt) (DiagramInfo, error) {
	return schema.Parse(ctx, DiagramInfoSchema, v, opts...)
}

func ParsePageAnnotation(ctx context.Context, v any, opts ...schema.ParseOpt) (PageAnnotation, error) {
	return schema.Parse(ctx, PageAnnotationSchema, v, opts...)
}

func ParseDrillSetup(ctx context.Context, v any, opts ...schema.ParseOpt) (DrillSetup, error) {
	return schema.Parse(ctx, DrillSetupSchema, v, opts...)
}

func ParseAdditionalSection(ctx context.Context, v any, opts ...schema.ParseOpt) (AdditionalSection, error) {
	return schema.Parse(ctx, AdditionalSectionSchema, v, opts...)
}

func ParseTacticalContext(ctx context.Context, v any, opts ...schema.ParseOpt) (TacticalContext, error) {
	return schema.Parse(ctx, TacticalContextSchema, v, opts...)
}

func ParseDrillBlock(ctx context.Context, v any, opts ...schema.ParseOpt) (DrillBlock, error) {
	return schema.Parse(ctx, DrillBlockSchema, v, opts...)
}

func ParseTrainingElements(ctx context.Context, v any, opts ...schema.ParseOpt) (TrainingElements, error) {
	return schema.Parse(ctx, TrainingElementsSchema, v, opts...)
}

func ParseSessionMetadata(ctx context.Context, v any, opts ...schema.ParseOpt) (SessionMetadata, error) {
	return schema.Parse(ctx, SessionMetadataSchema, v, opts...)
}

func ParseSource(ctx context.Context, v any, opts ...schema.ParseOpt) (Source, error) {
	return schema.Parse(ctx, SourceSchema, v, opts...)
}

// ParseSessionPlan validates an untyped tree into a SessionPlan.
func ParseSessionPlan(ctx context.Context, v any, opts ...schema.ParseOpt) (SessionPlan, error) {
	return schema.Parse(ctx, SessionPlanSchema, v, opts...)
}

// DecodeSessionPlan reads one JSON session plan from r.
func DecodeSessionPlan(ctx context.Context, r io.Reader, opts ...schema.ParseOpt) (SessionPlan, error) {
	return schema.ParseFrom(ctx, SessionPlanSchema, schema.JSONReader(r), opts...)
}

// Unmarshal parses JSON data into the entity pointed to by v.
func Unmarshal(ctx context.Context, data []byte, v any, opts ...schema.ParseOpt) error {
	src := schema.JSONBytes(data)
	var err error
	switch p := v.(type) {
	case *SessionPlan:
		*p, err = schema.ParseFrom(ctx, SessionPlanSchema, src, opts...)
	case *SessionMetadata:
		*p, err = schema.ParseFrom(ctx, SessionMetadataSchema, src, opts...)
	case *Source:
		*p, err = schema.ParseFrom(ctx, SourceSchema, src, opts...)
	case *TrainingElements:
		*p, err = schema.ParseFrom(ctx, TrainingElementsSchema, src, opts...)
	case *DrillBlock:
		*p, err = schema.ParseFrom(ctx, DrillBlockSchema, src, opts...)
	case *DrillSetup:
		*p, err = schema.ParseFrom(ctx, DrillSetupSchema, src, opts...)
	case *AdditionalSection:
		*p, err = schema.ParseFrom(ctx, AdditionalSectionSchema, src, opts...)
	case *TacticalContext:
		*p, err = schema.ParseFrom(ctx, TacticalContextSchema, src, opts...)
	case *DiagramInfo:
		*p, err = schema.ParseFrom(ctx, DiagramInfoSchema, src, opts...)
	case *PageAnnotation:
		*p, err = schema.ParseFrom(ctx, PageAnnotationSchema, src, opts...)
	case *PitchView:
		*p, err = schema.ParseFrom(ctx, PitchViewSchema, src, opts...)
	case *MovementArrow:
		*p, err = schema.ParseFrom(ctx, MovementArrowSchema, src, opts...)
	case *EquipmentObject:
		*p, err = schema.ParseFrom(ctx, EquipmentObjectSchema, src, opts...)
	case *GoalInfo:
		*p, err = schema.ParseFrom(ctx, GoalInfoSchema, src, opts...)
	case *BallPosition:
		*p, err = schema.ParseFrom(ctx, BallPositionSchema, src, opts...)
	case *PitchZone:
		*p, err = schema.ParseFrom(ctx, PitchZoneSchema, src, opts...)
	case *PlayerPosition:
		*p, err = schema.ParseFrom(ctx, PlayerPositionSchema, src, opts...)
	case *Extension:
		*p, err = schema.ParseFrom(ctx, ExtensionSchema, src, opts...)
	default:
		return fmt.Errorf("osti: cannot unmarshal into %T", v)
	}
	return err
}

// Encode projects an entity (value or pointer) into its ordered wire tree.
func Encode(ctx context.Context, v any) (any, error) {
	switch x := v.(type) {
	case SessionPlan:
		return SessionPlanSchema.Encode(ctx, x)
	case SessionMetadata:
		return SessionMetadataSchema.Encode(ctx, x)
	case Source:
		return SourceSchema.Encode(ctx, x)
	case TrainingElements:
		return TrainingElementsSchema.Encode(ctx, x)
	case DrillBlock:
		return DrillBlockSchema.Encode(ctx, x)
	case DrillSetup:
		return DrillSetupSchema.Encode(ctx, x)
	case AdditionalSection:
		return AdditionalSectionSchema.Encode(ctx, x)
	case TacticalContext:
		return TacticalContextSchema.Encode(ctx, x)
	case DiagramInfo:
		return DiagramInfoSchema.Encode(ctx, x)
	case PageAnnotation:
		return PageAnnotationSchema.Encode(ctx, x)
	case PitchView:
		return PitchViewSchema.Encode(ctx, x)
	case MovementArrow:
		return MovementArrowSchema.Encode(ctx, x)
	case EquipmentObject:
		return EquipmentObjectSchema.Encode(ctx, x)
	case GoalInfo:
		return GoalInfoSchema.Encode(ctx, x)
	case BallPosition:
		return BallPositionSchema.Encode(ctx, x)
	case PitchZone:
		return PitchZoneSchema.Encode(ctx, x)
	case PlayerPosition:
		return PlayerPositionSchema.Encode(ctx, x)
	case Extension:
		return ExtensionSchema.Encode(ctx, x)
	}
	if p, ok := derefEntity(v); ok {
		return Encode(ctx, p)
	}
	return nil, &schema.SerializationError{Path: "/", Err: fmt.Errorf("unsupported type %T", v)}
}

func derefEntity(v any) (any, bool) {
	switch p := v.(type) {
	case *SessionPlan:
		return deref(p)
	case *SessionMetadata:
		return deref(p)
	case *Source:
		return deref(p)
	case *TrainingElements:
		return deref(p)
	case *DrillBlock:
		return deref(p)
	case *DrillSetup:
		return deref(p)
	case *AdditionalSection:
		return deref(p)
	case *TacticalContext:
		return deref(p)
	case *DiagramInfo:
		return deref(p)
	case *PageAnnotation:
		return deref(p)
	case *PitchView:
		return deref(p)
	case *MovementArrow:
		return deref(p)
	case *EquipmentObject:
		return deref(p)
	case *GoalInfo:
		return deref(p)
	case *BallPosition:
		return deref(p)
	case *PitchZone:
		return deref(p)
	case *PlayerPosition:
		return deref(p)
	case *Extension:
		return deref(p)
	}
	return nil, false
}

func deref[T any](p *T) (any, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}
