package dto

import (
	"github.com/yukikurage/roadmap-planner-api/internal/board"
)

// BoardRowDTO is one grouping row of the projected board, items keyed
// by status column.
type BoardRowDTO struct {
	Grouping board.Grouping       `json:"grouping"`
	Columns  map[string][]ItemDTO `json:"columns"`
}

// BoardDTO is the projected board for one viewing dimension.
type BoardDTO struct {
	RoadmapID    string        `json:"roadmap_id"`
	Dimension    string        `json:"dimension"`
	Rows         []BoardRowDTO `json:"rows"`
	PendingCount int           `json:"pending_count"`
}

// ToBoardDTO converts projected rows to the response shape
func ToBoardDTO(roadmapID string, dim board.Dimension, rows []board.Row, pending int) BoardDTO {
	rowDTOs := make([]BoardRowDTO, len(rows))
	for i, row := range rows {
		columns := make(map[string][]ItemDTO, len(board.Statuses))
		for _, status := range board.Statuses {
			columns[string(status)] = ToItemDTOs(row.Columns[status])
		}
		rowDTOs[i] = BoardRowDTO{Grouping: row.Grouping, Columns: columns}
	}
	return BoardDTO{
		RoadmapID:    roadmapID,
		Dimension:    string(dim),
		Rows:         rowDTOs,
		PendingCount: pending,
	}
}
