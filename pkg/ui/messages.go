package ui

import "github.com/theapemachine/hybrid-travel/pkg/rag"

type answerMsg struct{ answer rag.Answer }
type errorMsg struct{ err error }
