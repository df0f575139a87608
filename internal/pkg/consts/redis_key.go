package consts

const (
	// PublishTickLock 发布定时任务互斥锁
	PublishTickLock = "autoposter:publish:lock"
	// QuotaWarnKey 当月配额告警去重标记
	QuotaWarnKey = "autoposter:quota:warned:"
)
