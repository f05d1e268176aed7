package kiosk

import (
	"fmt"
	"strconv"
	"strings"

	"vms/workflow"
)

// choiceList is the selector for one quiz question. Options are picked with
// the arrow keys and enter, or directly by number.
type choiceList struct {
	prompt   string
	options  []string
	selected int
	answered bool
}

func newChoiceList(q workflow.Question, current int, answered bool) choiceList {
	c := choiceList{prompt: q.Question, options: q.Options, answered: answered}
	if answered && current >= 0 && current < len(q.Options) {
		c.selected = current
	}
	return c
}

// update moves the selection for key and reports whether an option was
// picked.
func (c *choiceList) update(key string) bool {
	switch key {
	case "up", "k":
		if c.selected > 0 {
			c.selected--
		}
	case "down", "j":
		if c.selected < len(c.options)-1 {
			c.selected++
		}
	case "enter", "space", " ":
		return len(c.options) > 0
	default:
		n, err := strconv.Atoi(key)
		if err == nil && n >= 1 && n <= len(c.options) {
			c.selected = n - 1
			return true
		}
	}
	return false
}

func (c choiceList) view() string {
	var b strings.Builder
	b.WriteString(textStyle.Bold(true).Render(c.prompt))
	b.WriteString("\n\n")
	for i, opt := range c.options {
		line := fmt.Sprintf("%d) %s", i+1, opt)
		if i == c.selected {
			mark := "▸ "
			if c.answered {
				mark = "● "
			}
			b.WriteString(selectedStyle.Render(mark + line))
		} else {
			b.WriteString(textStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
