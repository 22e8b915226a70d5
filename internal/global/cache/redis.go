package cache

import (
	"context"
	"sync"
	"time"

	"club-activity-system/config"
	"club-activity-system/tools"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

func Init() {
	cfg := config.Get().Redis
	if cfg.Host == "" {
		// 未配置 redis 时退化为进程内锁，单实例部署下语义一致
		return
	}
	Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tools.PanicOnErr(Client.Ping(ctx).Err())
}

// localLocks 进程内兜底锁，key 与 redis 锁相同
var localLocks sync.Map

// TryLock 获取某个周期的互斥租约，成功返回释放函数，失败返回 false。
// 同一 (club, year, month) 的重算/审批必须串行，避免交错写入混版本成员行
func TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool) {
	if Client == nil {
		mu := &sync.Mutex{}
		actual, _ := localLocks.LoadOrStore(key, mu)
		m := actual.(*sync.Mutex)
		if !m.TryLock() {
			return nil, false
		}
		return m.Unlock, true
	}

	token := uuid.NewString()
	ok, err := Client.SetNX(ctx, key, token, ttl).Result()
	if err != nil || !ok {
		return nil, false
	}
	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		// 按 token 校验后再删，TTL 过期后他人抢到的租约不会被旧持有者误删
		releaseScript.Run(releaseCtx, Client, []string{key}, token)
	}, true
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)
