package journal

import (
	"errors"
)

type NoticeKind string

const (
	Success NoticeKind = "success"
	Failure NoticeKind = "error"
)

// Notice is a short message shown to the user after an action.
type Notice struct {
	Kind        NoticeKind `json:"kind"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
}

var (
	NoticeEntrySaved       = Notice{Kind: Success, Title: "Entry saved!"}
	NoticeEventAdded       = Notice{Kind: Success, Title: "Event added to your timeline!"}
	NoticeSignedIn         = Notice{Kind: Success, Title: "Signed in!"}
	NoticeSignedUp         = Notice{Kind: Success, Title: "Account created!", Description: "You can sign in now."}
	NoticeSignedOut        = Notice{Kind: Success, Title: "Signed out."}
	NoticeDiaryExported    = Notice{Kind: Success, Title: "PDF exported!", Description: "Your diary was exported successfully."}
	NoticeTimelineExported = Notice{Kind: Success, Title: "PDF exported!", Description: "Your timeline was exported successfully."}
	NoticeNoEntries        = Notice{Kind: Failure, Title: "No records", Description: "There are no records to export."}
	NoticeNoEvents         = Notice{Kind: Failure, Title: "No events", Description: "There are no events to export."}
)

// FailureNotice turns a failed action into a notice titled fallback, with
// the error as its description.
func FailureNotice(err error, fallback string) Notice {
	switch {
	case err == nil:
		return Notice{Kind: Failure, Title: fallback}
	case errors.Is(err, ErrMissingFields):
		return Notice{Kind: Failure, Title: "Please fill in all fields"}
	case errors.Is(err, ErrSignedOut):
		return Notice{Kind: Failure, Title: "Please sign in first"}
	}
	return Notice{Kind: Failure, Title: fallback, Description: err.Error()}
}
