// package formatter renders the board and single tasks in various formats (plain text, Markdown, CSV, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/lanes/internal/models"
	"github.com/desertthunder/lanes/internal/shared"
)

// Format names an output format.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	JSON     Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{Text, Markdown, CSV, JSON}

// ParseFormat accepts a format name or a common file extension (md, txt).
func ParseFormat(v string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "text", "txt":
		return Text, nil
	case "markdown", "md":
		return Markdown, nil
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, v)
	}
}

// boardJSON keeps lanes in board order when encoded.
type boardJSON struct {
	Pending    []models.Task `json:"pending"`
	InProgress []models.Task `json:"inprogress"`
	Completed  []models.Task `json:"completed"`
}

// Render converts the lanes to the given format.
func Render(format Format, lanes map[models.Status][]models.Task) ([]byte, error) {
	switch format {
	case Text, "":
		return BoardToText(lanes)
	case Markdown:
		return BoardToMarkdown(lanes)
	case CSV:
		return BoardToCSV(lanes)
	case JSON:
		return BoardToJSON(lanes)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// BoardToText lists each lane under a heading with its task count.
//
// Lanes missing from the map are skipped; present but empty lanes are printed as empty.
func BoardToText(lanes map[models.Status][]models.Task) ([]byte, error) {
	var buf bytes.Buffer

	for _, status := range models.Statuses {
		tasks, ok := lanes[status]
		if !ok {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(fmt.Sprintf("%s (%d)\n", status.Label(), len(tasks)))
		if len(tasks) == 0 {
			buf.WriteString("  (empty)\n")
		}
		for _, task := range tasks {
			buf.WriteString(fmt.Sprintf("  #%-4d %s\n", task.ID, task.Title))
		}
	}

	return buf.Bytes(), nil
}

// BoardToMarkdown writes one section per lane with a task list.
func BoardToMarkdown(lanes map[models.Status][]models.Task) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Board\n")
	for _, status := range models.Statuses {
		tasks, ok := lanes[status]
		if !ok {
			continue
		}
		buf.WriteString(fmt.Sprintf("\n## %s (%d)\n\n", status.Label(), len(tasks)))
		if len(tasks) == 0 {
			buf.WriteString("_No tasks_\n")
			continue
		}

		for _, task := range tasks {
			check := " "
			if task.Completed {
				check = "x"
			}
			buf.WriteString(fmt.Sprintf("- [%s] **#%d** %s", check, task.ID, task.Title))
			if task.Description != "" {
				buf.WriteString(fmt.Sprintf(": %s", task.Description))
			}
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

// BoardToCSV writes one row per task, lane by lane, with columns: ID, Title, Description, Status, Completed, UserID
func BoardToCSV(lanes map[models.Status][]models.Task) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Description", "Status", "Completed", "UserID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, status := range models.Statuses {
		for _, task := range lanes[status] {
			record := []string{
				strconv.Itoa(task.ID),
				task.Title,
				task.Description,
				string(task.Status),
				strconv.FormatBool(task.Completed),
				strconv.Itoa(task.UserID),
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// BoardToJSON encodes the lanes as an object keyed by status.
func BoardToJSON(lanes map[models.Status][]models.Task) ([]byte, error) {
	board := boardJSON{
		Pending:    nonNil(lanes[models.Pending]),
		InProgress: nonNil(lanes[models.InProgress]),
		Completed:  nonNil(lanes[models.Completed]),
	}
	return shared.MarshalJSON(board, true)
}

func nonNil(tasks []models.Task) []models.Task {
	if tasks == nil {
		return []models.Task{}
	}
	return tasks
}

// TaskToText renders a single task as labelled lines.
func TaskToText(task models.Task) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Task #%d\n", task.ID))
	buf.WriteString(fmt.Sprintf("Title:       %s\n", task.Title))
	if task.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", task.Description))
	}
	buf.WriteString(fmt.Sprintf("Status:      %s\n", task.Status.Label()))
	buf.WriteString(fmt.Sprintf("User:        %d\n", task.UserID))

	return buf.Bytes()
}

// WriteBoard renders the lanes and writes them to path.
func WriteBoard(format Format, lanes map[models.Status][]models.Task, path string) error {
	data, err := Render(format, lanes)
	if err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write board file: %w", err)
	}
	return nil
}
