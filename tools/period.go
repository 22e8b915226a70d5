package tools

import (
	"fmt"
	"strconv"
	"time"
)

// Period 统计周期，精确到自然月
type Period struct {
	Year  int
	Month int
}

// ParsePeriod 解析 year/month 查询参数，缺省取当前月份
// 非法取值（月份越界、非数字）返回错误，由调用方映射为参数错误
func ParsePeriod(yearStr, monthStr string) (Period, error) {
	now := time.Now()
	p := Period{Year: now.Year(), Month: int(now.Month())}

	if yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < 2000 || year > 2100 {
			return Period{}, fmt.Errorf("非法年份 %q", yearStr)
		}
		p.Year = year
	}
	if monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			return Period{}, fmt.Errorf("非法月份 %q", monthStr)
		}
		p.Month = month
	}
	return p, nil
}

// Bounds 返回 [月初, 下月初) 的 unix 秒
func (p Period) Bounds() (start, end int64) {
	startTime := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.Local)
	return startTime.Unix(), startTime.AddDate(0, 1, 0).Unix()
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
