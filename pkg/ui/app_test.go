package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/hybrid-travel/pkg/rag"
)

type fakeAsker struct {
	answer rag.Answer
	err    error
	asked  []string
}

func (asker *fakeAsker) Answer(ctx context.Context, query string) (rag.Answer, error) {
	asker.asked = append(asker.asked, query)
	return asker.answer, asker.err
}

func typed(m tea.Model, text string) tea.Model {
	mm := m.(model)
	mm.textarea.SetValue(text)
	return mm
}

func enter(m tea.Model) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestIsExit(t *testing.T) {
	Convey("Given lines that end the session", t, func() {
		for _, line := range []string{"", "   ", "exit", "QUIT", " Exit "} {
			So(IsExit(line), ShouldBeTrue)
		}
	})

	Convey("Given a question", t, func() {
		So(IsExit("exit strategies for Hanoi traffic"), ShouldBeFalse)
	})
}

func TestModel(t *testing.T) {
	Convey("Given a question typed into the chat", t, func() {
		asker := &fakeAsker{answer: rag.Answer{Response: "Visit Hoi An at night.", VectorResults: 5, GraphResults: 2}}
		m := typed(New(context.Background(), asker), "What about Hoi An?")

		next, cmd := enter(m)

		Convey("It should show the question and ask in the background", func() {
			So(cmd, ShouldNotBeNil)
			So(next.(model).waiting, ShouldBeTrue)
			So(next.(model).messages, ShouldHaveLength, 1)

			msg := cmd()
			So(asker.asked, ShouldResemble, []string{"What about Hoi An?"})

			final, _ := next.Update(msg)
			So(final.(model).waiting, ShouldBeFalse)
			So(final.(model).messages, ShouldHaveLength, 3)
			So(final.(model).messages[1], ShouldContainSubstring, "Visit Hoi An at night.")
			So(final.(model).messages[2], ShouldContainSubstring, "[5 places, 2 relationships]")
		})
	})

	Convey("Given a failing assistant", t, func() {
		asker := &fakeAsker{err: errors.New("vector index unreachable")}
		m := typed(New(context.Background(), asker), "Hue")

		next, cmd := enter(m)
		final, _ := next.Update(cmd())

		So(final.(model).messages[1], ShouldContainSubstring, "vector index unreachable")
	})

	Convey("Given an exit word", t, func() {
		m := typed(New(context.Background(), &fakeAsker{}), "quit")

		_, cmd := enter(m)

		So(cmd, ShouldNotBeNil)
		So(cmd(), ShouldResemble, tea.Quit())
	})

	Convey("Given a fallback answer", t, func() {
		So(Sources(rag.Answer{Fallback: true}), ShouldEqual, "[0 places, 0 relationships] [offline answer]")
	})
}
