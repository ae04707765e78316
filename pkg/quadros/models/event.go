package models

import "time"

// EventCode is a short alphabetic token embedded in roster observation text
// alongside a date (e.g. "TE 15/03").
type EventCode string

const (
	// EventTransfer marks a student transfer out of the school.
	EventTransfer EventCode = "TE"
	// EventCancellation marks an enrollment cancellation.
	EventCancellation EventCode = "MC"
	// EventCancellationCompulsory marks a compulsory enrollment cancellation.
	EventCancellationCompulsory EventCode = "MCC"
	// EventReassignment marks a class reassignment.
	EventReassignment EventCode = "REM"
)

// DefaultEventCodes is the closed code alphabet scanned in observation cells.
// MCC precedes MC so the longer token wins.
var DefaultEventCodes = []EventCode{
	EventCancellationCompulsory,
	EventCancellation,
	EventTransfer,
	EventReassignment,
}

// Category is the canonical reason category for a classified event. The
// string values match the labels printed in the report templates.
type Category string

const (
	CategoryInNetwork     Category = "Dentro da rede"
	CategoryCityMove      Category = "Mudança de Municipio"
	CategoryStateMove     Category = "Mudança de estado"
	CategoryPrivateSchool Category = "Mudança para Escola Particular"
	CategoryCountryMove   Category = "Mudança de País"
	CategoryDropout       Category = "Desistencia"
	// CategoryUnknown absorbs every raw reason not present in the lookup
	// table, so classification is total over the input alphabet.
	CategoryUnknown Category = "Sem Informação"
)

// Categories lists every canonical category in template row order.
var Categories = []Category{
	CategoryInNetwork,
	CategoryCityMove,
	CategoryStateMove,
	CategoryPrivateSchool,
	CategoryCountryMove,
	CategoryDropout,
	CategoryUnknown,
}

// ClassifiedEvent is one accepted roster row after classification.
// Immutable once produced.
type ClassifiedEvent struct {
	// Row is the 1-based source row the event came from.
	Row int `json:"row"`
	// StudentID is the student registry number (RM).
	StudentID string `json:"student_id"`
	// Series is the reporting series key (e.g. "4º"), not the full class name.
	Series string `json:"series"`
	// RawSeries is the class name as written in the roster (e.g. "4ºB").
	RawSeries string `json:"raw_series"`
	// Code is the event code matched in the observation cell.
	Code EventCode `json:"code"`
	// Category is the canonical reason category.
	Category Category `json:"category"`
	// RawCategory is the reason text before canonical mapping.
	RawCategory string `json:"raw_category"`
	// Date is the event date, complete after year inference.
	Date time.Time `json:"date"`
	// YearInferred reports that the source text omitted the year and it was
	// resolved against the validity window.
	YearInferred bool `json:"year_inferred"`
	// RawMatch is the exact text matched in the observation cell.
	RawMatch string `json:"raw_match"`
}
