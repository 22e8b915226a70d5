package scoring

import "club-activity-system/internal/model"

// ReduceStaff 把一个周期内的考核标签归约为统计值
// 均值按 POOR=0 FAIR=1 GOOD=2 EXCELLENT=3 映射后放大到 0~100，
// 众数标签计数相同取更高档；无记录时为 UNKNOWN
func ReduceStaff(tags []string) StaffStats {
	stats := StaffStats{StaffEvaluation: model.StaffTagUnknown}

	counts := make(map[int]int, 4)
	sum := 0
	for _, tag := range tags {
		v, ok := model.StaffTagValue(tag)
		if !ok {
			continue
		}
		counts[v]++
		sum += v
		stats.TotalStaffCount++
	}
	if stats.TotalStaffCount == 0 {
		return stats
	}

	stats.AvgStaffPerformance = float64(sum) / float64(stats.TotalStaffCount) * 100 / 3

	best, bestCount := 0, 0
	for v := 0; v <= 3; v++ {
		// >= 让计数相同时偏向更高档标签
		if counts[v] >= bestCount && counts[v] > 0 {
			best, bestCount = v, counts[v]
		}
	}
	stats.StaffEvaluation = tagOfValue(best)
	return stats
}

func tagOfValue(v int) string {
	switch v {
	case 0:
		return model.StaffTagPoor
	case 1:
		return model.StaffTagFair
	case 2:
		return model.StaffTagGood
	case 3:
		return model.StaffTagExcellent
	default:
		return model.StaffTagUnknown
	}
}
