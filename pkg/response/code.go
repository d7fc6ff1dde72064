package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 认证模块错误 100xx
	ErrAuthFailed     = 10003
	ErrTokenInvalid   = 10004
	ErrNoPermission   = 10005
	ErrSessionExpired = 10006

	// 站点 / 活动模块错误 200xx
	ErrSiteNotFound     = 20001
	ErrGiveawayNotFound = 20002
	ErrSlugTaken        = 20003

	// 抽奖模块错误 300xx
	ErrNoEntries         = 30001
	ErrNoEligibleEntries = 30002
	ErrAlreadyWon        = 30003
	ErrDrawInProgress    = 30004
	ErrWinnerNotFound    = 30005

	// 内容生成 / 上传错误 400xx
	ErrInvalidUpload = 40001
	ErrUploadFailed  = 40002

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
