package osti

import (
	"slices"

	"github.com/karstenskyt/osti/dsl"
)

// PitchViewType is the portion of the pitch a diagram shows.
type PitchViewType string

const (
	FullPitch          PitchViewType = "full_pitch"
	HalfPitch          PitchViewType = "half_pitch"
	PenaltyArea        PitchViewType = "penalty_area"
	Third              PitchViewType = "third"
	BetweenHalfAndFull PitchViewType = "between_half_and_full"
	CustomView         PitchViewType = "custom"
)

// ArrowType classifies movement arrows in diagrams.
type ArrowType string

const (
	ArrowRun         ArrowType = "run"
	ArrowPass        ArrowType = "pass"
	ArrowShot        ArrowType = "shot"
	ArrowDribble     ArrowType = "dribble"
	ArrowCross       ArrowType = "cross"
	ArrowThroughBall ArrowType = "through_ball"
	ArrowMovement    ArrowType = "movement"
)

// EquipmentType is a piece of training equipment shown in diagrams.
type EquipmentType string

const (
	Cone      EquipmentType = "cone"
	Mannequin EquipmentType = "mannequin"
	Pole      EquipmentType = "pole"
	Gate      EquipmentType = "gate"
	Hurdle    EquipmentType = "hurdle"
	MiniGoal  EquipmentType = "mini_goal"
	FullGoal  EquipmentType = "full_goal"
	AirBody   EquipmentType = "air_body"
	Flag      EquipmentType = "flag"
)

// GameElement is the moment of the game a drill trains.
type GameElement string

const (
	BuildUp            GameElement = "build_up"
	PositionalAttack   GameElement = "positional_attack"
	CounterAttack      GameElement = "counter_attack"
	TransitionToAttack GameElement = "transition_to_attack"
	Pressing           GameElement = "pressing"
	CompactDefending   GameElement = "compact_defending"
	TransitionToDefend GameElement = "transition_to_defend"
	SetPiece           GameElement = "set_piece"
)

// LaneName is one of the five vertical corridors of the pitch.
type LaneName string

const (
	LeftWing        LaneName = "left_wing"
	LeftHalfSpace   LaneName = "left_half_space"
	CentralCorridor LaneName = "central_corridor"
	RightHalfSpace  LaneName = "right_half_space"
	RightWing       LaneName = "right_wing"
)

// SituationType describes the opposition structure of a drill.
type SituationType string

const (
	Unopposed       SituationType = "unopposed"
	SemiOpposed     SituationType = "semi_opposed"
	Opposed         SituationType = "opposed"
	SmallSidedGame  SituationType = "small_sided_game"
	PhaseOfPlay     SituationType = "phase_of_play"
	ConditionedGame SituationType = "conditioned_game"
)

var (
	pitchViewTypes = []PitchViewType{FullPitch, HalfPitch, PenaltyArea, Third, BetweenHalfAndFull, CustomView}
	arrowTypes     = []ArrowType{ArrowRun, ArrowPass, ArrowShot, ArrowDribble, ArrowCross, ArrowThroughBall, ArrowMovement}
	equipmentTypes = []EquipmentType{Cone, Mannequin, Pole, Gate, Hurdle, MiniGoal, FullGoal, AirBody, Flag}
	gameElements   = []GameElement{BuildUp, PositionalAttack, CounterAttack, TransitionToAttack, Pressing, CompactDefending, TransitionToDefend, SetPiece}
	laneNames      = []LaneName{LeftWing, LeftHalfSpace, CentralCorridor, RightHalfSpace, RightWing}
	situationTypes = []SituationType{Unopposed, SemiOpposed, Opposed, SmallSidedGame, PhaseOfPlay, ConditionedGame}
)

// Values returns the members in declaration order.
func (PitchViewType) Values() []PitchViewType { return slices.Clone(pitchViewTypes) }
func (ArrowType) Values() []ArrowType         { return slices.Clone(arrowTypes) }
func (EquipmentType) Values() []EquipmentType { return slices.Clone(equipmentTypes) }
func (GameElement) Values() []GameElement     { return slices.Clone(gameElements) }
func (LaneName) Values() []LaneName           { return slices.Clone(laneNames) }
func (SituationType) Values() []SituationType { return slices.Clone(situationTypes) }

// Valid reports whether the value is a member of its enumeration.
func (v PitchViewType) Valid() bool { return slices.Contains(pitchViewTypes, v) }
func (v ArrowType) Valid() bool     { return slices.Contains(arrowTypes, v) }
func (v EquipmentType) Valid() bool { return slices.Contains(equipmentTypes, v) }
func (v GameElement) Valid() bool   { return slices.Contains(gameElements, v) }
func (v LaneName) Valid() bool      { return slices.Contains(laneNames, v) }
func (v SituationType) Valid() bool { return slices.Contains(situationTypes, v) }

var (
	pitchViewTypeEnum = dsl.Enum("PitchViewType", pitchViewTypes...).Describe("What portion of the pitch is shown in the diagram.")
	arrowTypeEnum     = dsl.Enum("ArrowType", arrowTypes...).Describe("Classification of movement arrows in diagrams.")
	equipmentTypeEnum = dsl.Enum("EquipmentType", equipmentTypes...).Describe("Types of training equipment shown in diagrams.")
	gameElementEnum   = dsl.Enum("GameElement", gameElements...).Describe("Moment of the game the drill trains.")
	laneNameEnum      = dsl.Enum("LaneName", laneNames...).Describe("Vertical corridor of the pitch.")
	situationTypeEnum = dsl.Enum("SituationType", situationTypes...).Describe("Opposition structure of the drill.")
)
