package service

import (
	"errors"

	"postflow/internal/store"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
	BadGateway          = 502
)

var (
	// 鉴权
	ErrParamInvalid        = errors.New("参数错误")
	ErrCredentialIncorrect = errors.New("邮箱或密码错误")
	ErrUserNotFound        = errors.New("用户不存在")
	UnauthorizedError      = errors.New("权限不足")

	// 内容生成
	ErrGenMissingKey       = errors.New("未配置 Gemini API Key")
	ErrGenProviderRejected = errors.New("AI服务拒绝了本次请求，请稍后重试")
	ErrGenUnparseable      = errors.New("AI返回内容无法解析")
	ErrGenInFlight         = errors.New("上一次生成尚未完成")

	// 创作会话
	ErrTopicEmpty       = errors.New("请先填写要发布的主题")
	ErrNoPlatform       = errors.New("请至少选择一个目标平台")
	ErrProfileMissing   = errors.New("请先完善企业档案再生成内容")
	ErrNoSession        = errors.New("当前没有进行中的创作会话")
	ErrDraftNotReady    = errors.New("还没有可保存的草稿")
	ErrScheduleRequired = errors.New("定时发布需要指定时间")
	ErrStatusInvalid    = errors.New("帖子状态无效")

	// 持久化：托管库写失败由 store 层统一产出
	ErrStoreUnavailable = store.ErrUnavailable
	ErrPostNotFound     = errors.New("帖子不存在")

	// 平台发布：verify/publish 的细分诊断走结果消息，这里只留入口级错误
	ErrPlatformInvalid = errors.New("不支持的平台")
	ErrNotConnected    = errors.New("该平台尚未连接，请先到设置页配置凭据")

	// 媒体
	ErrFileNotSupported = errors.New("不支持的文件类型")

	UnExpectedError = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrCredentialIncorrect: Unauthorized,
	ErrUserNotFound:        NotFound,
	UnauthorizedError:      Unauthorized,

	ErrGenMissingKey:       BadGateway,
	ErrGenProviderRejected: BadGateway,
	ErrGenUnparseable:      BadGateway,
	ErrGenInFlight:         BadRequest,

	ErrTopicEmpty:       BadRequest,
	ErrNoPlatform:       BadRequest,
	ErrProfileMissing:   BadRequest,
	ErrNoSession:        BadRequest,
	ErrDraftNotReady:    BadRequest,
	ErrScheduleRequired: BadRequest,
	ErrStatusInvalid:    BadRequest,

	ErrStoreUnavailable: InternalServerError,
	ErrPostNotFound:     NotFound,

	ErrPlatformInvalid: BadRequest,
	ErrNotConnected:    BadRequest,

	ErrFileNotSupported: BadRequest,

	UnExpectedError: InternalServerError,
}
