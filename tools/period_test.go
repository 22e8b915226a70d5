package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2025", "1")
	require.NoError(t, err)
	require.Equal(t, Period{Year: 2025, Month: 1}, p)
	require.Equal(t, "2025-01", p.String())

	// 缺省取当前月份
	p, err = ParsePeriod("", "")
	require.NoError(t, err)
	now := time.Now()
	require.Equal(t, now.Year(), p.Year)
	require.Equal(t, int(now.Month()), p.Month)

	for _, bad := range [][2]string{{"abc", "1"}, {"1999", "1"}, {"2025", "13"}, {"2025", "0"}} {
		_, err = ParsePeriod(bad[0], bad[1])
		require.Error(t, err, "year=%s month=%s", bad[0], bad[1])
	}
}

func TestPeriodBounds(t *testing.T) {
	start, end := Period{Year: 2025, Month: 1}.Bounds()
	require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local).Unix(), start)
	require.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local).Unix(), end)

	// 跨年
	start, end = Period{Year: 2024, Month: 12}.Bounds()
	require.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.Local).Unix(), start)
	require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local).Unix(), end)
}
