package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	InternalServerError = 500
	BadGateway          = 502
)

var (
	ErrParamInvalid          = errors.New("参数错误")
	ErrPostNotFound          = errors.New("帖子不存在")
	ErrPostAlreadyPosted     = errors.New("帖子已发布")
	ErrNoContentFetched      = errors.New("未抓取到可用内容")
	ErrGenerateFailed        = errors.New("文案生成失败")
	ErrNoPlatformText        = errors.New("帖子缺少该平台文案")
	ErrPlatformNotConfigured = errors.New("平台凭证未配置")
	ErrPublishFailed         = errors.New("发布失败")
	ErrImageUnavailable      = errors.New("配图服务不可用")
	ErrScheduleTimeInvalid   = errors.New("定时时间无效")
	UnExpectedError          = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:          BadRequest,
	ErrPostNotFound:          NotFound,
	ErrPostAlreadyPosted:     BadRequest,
	ErrNoContentFetched:      NotFound,
	ErrGenerateFailed:        BadGateway,
	ErrNoPlatformText:        BadRequest,
	ErrPlatformNotConfigured: InternalServerError,
	ErrPublishFailed:         BadGateway,
	ErrImageUnavailable:      BadGateway,
	ErrScheduleTimeInvalid:   BadRequest,
	UnExpectedError:          InternalServerError,
}
