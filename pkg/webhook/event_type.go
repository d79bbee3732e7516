package webhook

// EventType is a GitHub webhook event name as sent in the X-GitHub-Event header.
type EventType string

const (
	EventCheckRun                 EventType = "check_run"
	EventCommitComment            EventType = "commit_comment"
	EventCreate                   EventType = "create"
	EventDelete                   EventType = "delete"
	EventFork                     EventType = "fork"
	EventIssueComment             EventType = "issue_comment"
	EventIssues                   EventType = "issues"
	EventMeta                     EventType = "meta"
	EventPing                     EventType = "ping"
	EventPublic                   EventType = "public"
	EventPullRequest              EventType = "pull_request"
	EventPullRequestReview        EventType = "pull_request_review"
	EventPullRequestReviewComment EventType = "pull_request_review_comment"
	EventPullRequestReviewThread  EventType = "pull_request_review_thread"
	EventPush                     EventType = "push"
	EventRelease                  EventType = "release"
	EventRepository               EventType = "repository"
	EventStar                     EventType = "star"
	EventStatus                   EventType = "status"
	EventWatch                    EventType = "watch"
)

// SupportedEventTypes returns every event type the relay accepts, in header-name order.
func SupportedEventTypes() []EventType {
	return []EventType{
		EventCheckRun,
		EventCommitComment,
		EventCreate,
		EventDelete,
		EventFork,
		EventIssueComment,
		EventIssues,
		EventMeta,
		EventPing,
		EventPublic,
		EventPullRequest,
		EventPullRequestReview,
		EventPullRequestReviewComment,
		EventPullRequestReviewThread,
		EventPush,
		EventRelease,
		EventRepository,
		EventStar,
		EventStatus,
		EventWatch,
	}
}

// ParseEventType reports whether name is a supported event type.
func ParseEventType(name string) (EventType, bool) {
	for _, t := range SupportedEventTypes() {
		if string(t) == name {
			return t, true
		}
	}
	return "", false
}

func (t EventType) String() string {
	return string(t)
}
