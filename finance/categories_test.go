package finance

import "testing"

func TestMapToBudgetCategory(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		// Exact match wins before any substring pass runs.
		{"Building Insurance", "Insurance"},
		{"building insurance", "Insurance"},
		{"Flood Insurance", "Insurance"},
		// Substring containment in table order.
		{"ACME Building Insurance Premium Q3", "Insurance"},
		{"General Liability Insurance Renewal", "Insurance"},
		{"Utilities", "Utilities"},
		{"Lawn care - front entrance", "Landscaping"},
		{"Tree Service (storm cleanup)", "Landscaping"},
		{"City Water & Sewer", "Utilities"},
		{"Pool heater repair", "Maintenance"},
		{"Management Fee - June", "Management"},
		{"Attorney retainer", "Legal & Professional"},
		{"Reserve contribution", "Reserves"},
		// Fallback.
		{"Holiday party", "Other"},
		{"", "Other"},
		{"   ", "Other"},
	}

	for _, tc := range cases {
		if got := MapToBudgetCategory(tc.raw); got != tc.want {
			t.Errorf("MapToBudgetCategory(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

// Every bucket the table targets must resolve to itself, so a budget
// category named after a bucket always claims that bucket.
func TestCategoryBuckets_BucketNamesResolveToThemselves(t *testing.T) {
	buckets := map[string]bool{}
	for _, m := range categoryBuckets {
		buckets[m.bucket] = true
	}
	for bucket := range buckets {
		if got := MapToBudgetCategory(bucket); got != bucket {
			t.Errorf("MapToBudgetCategory(%q) = %q, want itself", bucket, got)
		}
	}
}

// Narrow keys must sit above broad ones so the substring pass cannot swallow
// them. This pins the table ordering as a contract.
func TestCategoryBuckets_NarrowBeforeBroad(t *testing.T) {
	index := map[string]int{}
	for i, m := range categoryBuckets {
		index[m.key] = i
	}

	broad, ok := index["insurance"]
	if !ok {
		t.Fatal("missing broad insurance key")
	}
	for _, narrow := range []string{"building insurance", "flood insurance", "liability insurance"} {
		i, ok := index[narrow]
		if !ok {
			t.Fatalf("missing narrow key %q", narrow)
		}
		if i >= broad {
			t.Errorf("%q at %d must come before %q at %d", narrow, i, "insurance", broad)
		}
	}
}
