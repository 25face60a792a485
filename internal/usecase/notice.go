package usecase

import "time"

// NoticeKind distinguishes success banners from error banners.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

const (
	OrderPlacedMessage = "訂購成功!"
	FeeAddedMessage    = "新增成功!"
	FeeFailedMessage   = "新增費用失敗，請稍後再試"

	ExpenseUpdatedMessage      = "更新成功!"
	ExpenseUpdateFailedMessage = "更新失敗，請稍後再試"
)

// Notice is a transient banner the client hides at ExpiresAt.
type Notice struct {
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	ExpiresAt time.Time  `json:"expires_at"`
}

type noticeClock struct {
	now      func() time.Time
	duration time.Duration
}

func (c noticeClock) notice(kind NoticeKind, message string) Notice {
	return Notice{Kind: kind, Message: message, ExpiresAt: c.now().Add(c.duration)}
}
