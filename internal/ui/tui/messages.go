package tui

import (
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/usecase"
)

type sessionLoadedMsg struct {
	sess domain.Session
	err  error
}

type listLoadedMsg struct {
	seq uint64
	out usecase.ListResult
	err error
}

type itemLoadedMsg struct {
	seq uint64
	rec domain.Record
	err error
}

type submitDoneMsg struct {
	op  domain.Operation
	out usecase.SubmitResult
	err error
}

type deleteDoneMsg struct {
	id  string
	out usecase.SubmitResult
	err error
}

type loginDoneMsg struct {
	sess domain.Session
	err  error
}

type logoutDoneMsg struct {
	err error
}
