package models

import (
	user "github.com/mnuddindev/routinely/internal/models/user"
	workouts "github.com/mnuddindev/routinely/internal/models/workouts"
)

// RegisterModels lists every table in migration order.
func RegisterModels() []interface{} {
	return append([]interface{}{&user.User{}}, workouts.Models()...)
}

type (
	User          = user.User
	RegisterInput = user.RegisterInput
	Routine       = workouts.Routine
	RoutineInput  = workouts.RoutineInput
	Tag           = workouts.Tag
	Exercise      = workouts.Exercise
	Like          = workouts.Like
	Comment       = workouts.Comment
	JournalEntry  = workouts.JournalEntry
	Journal       = workouts.Journal
	Cache         = workouts.Cache
)

var (
	NewUser      = user.NewUser
	Register     = user.Register
	Authenticate = user.Authenticate
	GetUserBy    = user.GetUserBy
	ListUsers    = user.ListUsers

	CreateRoutine         = workouts.CreateRoutine
	GetRoutine            = workouts.GetRoutine
	EditRoutine           = workouts.EditRoutine
	DeleteRoutine         = workouts.DeleteRoutine
	CustomizeRoutine      = workouts.CustomizeRoutine
	AddExercises          = workouts.AddExercises
	ListRoutinesByLikes   = workouts.ListRoutinesByLikes
	ListRoutinesByRecency = workouts.ListRoutinesByRecency
	CountRoutines         = workouts.CountRoutines
	ToggleLike            = workouts.ToggleLike
	HasLiked              = workouts.HasLiked
	AddComment            = workouts.AddComment
	ListComments          = workouts.ListComments
	AddToJournal          = workouts.AddToJournal
	MarkComplete          = workouts.MarkComplete
	RemoveJournalEntry    = workouts.RemoveJournalEntry
	ListJournal           = workouts.ListJournal
)
