package finance

import "strings"

// BucketOther is the synthetic catch-all budget bucket.
const BucketOther = "Other"

type bucketMapping struct {
	key    string
	bucket string
}

// categoryBuckets maps free-text category names onto the association's fixed
// budget buckets. Order matters: the substring pass walks this slice top to
// bottom, so narrower keys ("building insurance") must appear before broader
// ones ("insurance") that would otherwise swallow them. Do not convert this
// to a map.
var categoryBuckets = []bucketMapping{
	{"building insurance", "Insurance"},
	{"flood insurance", "Insurance"},
	{"liability insurance", "Insurance"},
	{"landscape", "Landscaping"},
	{"landscaping", "Landscaping"},
	{"lawn", "Landscaping"},
	{"tree service", "Landscaping"},
	{"irrigation", "Landscaping"},
	{"utilities", "Utilities"},
	{"water", "Utilities"},
	{"sewer", "Utilities"},
	{"electric", "Utilities"},
	{"gas", "Utilities"},
	{"trash", "Utilities"},
	{"waste", "Utilities"},
	{"pool", "Maintenance"},
	{"elevator", "Maintenance"},
	{"plumbing", "Maintenance"},
	{"roof", "Maintenance"},
	{"repair", "Maintenance"},
	{"maintenance", "Maintenance"},
	{"management fee", "Management"},
	{"management", "Management"},
	{"admin", "Management"},
	{"legal", "Legal & Professional"},
	{"attorney", "Legal & Professional"},
	{"accounting", "Legal & Professional"},
	{"audit", "Legal & Professional"},
	{"reserve", "Reserves"},
	{"insurance", "Insurance"},
}

// MapToBudgetCategory resolves a raw category name to a budget bucket.
// Three passes, first success wins: exact case-insensitive key match, then
// substring containment in table order, then BucketOther.
func MapToBudgetCategory(rawCategoryName string) string {
	lowered := strings.ToLower(strings.TrimSpace(rawCategoryName))
	if lowered == "" {
		return BucketOther
	}

	for _, m := range categoryBuckets {
		if lowered == m.key {
			return m.bucket
		}
	}
	for _, m := range categoryBuckets {
		if strings.Contains(lowered, m.key) {
			return m.bucket
		}
	}
	return BucketOther
}
