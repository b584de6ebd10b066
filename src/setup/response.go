package setup

import (
	"fmt"
)

const successMessage = "User configured successfully"

// Response is the JSON body returned to the trigger caller
type Response struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
	Details string        `json:"details,omitempty"`
	Data    *ResponseData `json:"data,omitempty"`
}

// ResponseData summarizes a successful setup
type ResponseData struct {
	ProfileID       string `json:"profileId"`
	CalendarID      string `json:"calendarId"`
	EtiquettesCount int    `json:"etiquettesCount"`
	EventsCount     int    `json:"eventsCount"`
}

// SuccessResponse returns the response for a completed run.
func SuccessResponse(summary *Summary) Response {
	return Response{
		Success: true,
		Message: successMessage,
		Data: &ResponseData{
			ProfileID:       summary.ProfileID,
			CalendarID:      summary.CalendarID,
			EtiquettesCount: summary.EtiquettesCount,
			EventsCount:     summary.EventsCount,
		},
	}
}

// FailureResponse returns the response for a failed run. Details are only
// filled in when development is set.
func FailureResponse(err error, development bool) Response {
	response := Response{
		Success: false,
		Error:   err.Error(),
	}
	if development {
		if code := FailureCode(err); code != "" {
			response.Details = fmt.Sprintf("%s: %+v", code, err)
		} else {
			response.Details = fmt.Sprintf("%+v", err)
		}
	}
	return response
}
