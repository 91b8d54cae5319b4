package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/johnlegerronspivey/bigmannentertainment-sub000/internal/domain"
)

const callTimeout = 2 * time.Minute

var errNotWired = errors.New("tui dependency is nil")

func logger(deps Deps) *slog.Logger {
	if deps.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return deps.Logger
}

func cmdLoadSession(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if deps.Auth == nil {
			return sessionLoadedMsg{err: errNotWired}
		}
		sess, err := deps.Auth.Current()
		return sessionLoadedMsg{sess: sess, err: err}
	}
}

func cmdLoadList(deps Deps, res domain.Resource, page domain.Page, filters map[string]string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		if deps.Views == nil {
			return listLoadedMsg{seq: seq, err: errNotWired}
		}
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		out, err := deps.Views.List(ctx, res, page, filters)
		if err != nil {
			logger(deps).Warn("view.load.failed", "resource", res.Name, "page", page.Number, "filters", len(filters), "seq", seq, "err", err)
		} else if deps.Debug {
			logger(deps).Debug("view.load.ok", "resource", res.Name, "page", out.Page.Number, "count", out.Page.Count, "seq", seq)
		}
		return listLoadedMsg{seq: seq, out: out, err: err}
	}
}

func cmdLoadItem(deps Deps, res domain.Resource, id string, seq uint64) tea.Cmd {
	return func() tea.Msg {
		if deps.Views == nil {
			return itemLoadedMsg{seq: seq, err: errNotWired}
		}
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		rec, err := deps.Views.Show(ctx, res, id)
		if err != nil {
			logger(deps).Warn("view.show.failed", "resource", res.Name, "id", id, "err", err)
		}
		return itemLoadedMsg{seq: seq, rec: rec, err: err}
	}
}

func cmdSubmit(deps Deps, res domain.Resource, op domain.Operation, id string, values map[string]string) tea.Cmd {
	return func() tea.Msg {
		if deps.Forms == nil {
			return submitDoneMsg{op: op, err: errNotWired}
		}
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		out, err := deps.Forms.Execute(ctx, res, op, id, values)
		if err != nil {
			logger(deps).Warn("form.submit.failed", "resource", res.Name, "op", string(op), "err", err)
		} else {
			logger(deps).Info("form.submit.ok", "resource", res.Name, "op", string(op), "shared", out.Shared)
		}
		return submitDoneMsg{op: op, out: out, err: err}
	}
}

func cmdDelete(deps Deps, res domain.Resource, id string) tea.Cmd {
	return func() tea.Msg {
		if deps.Forms == nil {
			return deleteDoneMsg{id: id, err: errNotWired}
		}
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		out, err := deps.Forms.Delete(ctx, res, id)
		if err != nil {
			logger(deps).Warn("form.delete.failed", "resource", res.Name, "id", id, "err", err)
		}
		return deleteDoneMsg{id: id, out: out, err: err}
	}
}

func cmdLogin(deps Deps, email, password string) tea.Cmd {
	return func() tea.Msg {
		if deps.Auth == nil {
			return loginDoneMsg{err: errNotWired}
		}
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		sess, err := deps.Auth.Login(ctx, email, password)
		if err != nil {
			logger(deps).Warn("auth.login.failed", "err", err)
		} else {
			logger(deps).Info("auth.login.ok", "user", sess.UserLabel())
		}
		return loginDoneMsg{sess: sess, err: err}
	}
}

func cmdLogout(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if deps.Auth == nil {
			return logoutDoneMsg{err: errNotWired}
		}
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		return logoutDoneMsg{err: deps.Auth.Logout(ctx)}
	}
}
