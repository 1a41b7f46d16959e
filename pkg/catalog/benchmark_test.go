package catalog_test

import (
	"fmt"
	"testing"

	"github.com/vanderheijden86/devquest/pkg/catalog"
	"github.com/vanderheijden86/devquest/pkg/testutil"
)

func BenchmarkRender(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("records=%d", size), func(b *testing.B) {
			s := catalog.NewStore(catalog.ThemeDark)
			s.Load(testutil.QuickRecords(size))
			s.SetCategoryFilter("go")

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = s.SetSearchQuery("testing")
			}
		})
	}
}

func TestFilteredViewIsOrderedSubset(t *testing.T) {
	records := testutil.QuickRecords(200)
	s := catalog.NewStore(catalog.ThemeLight)
	s.Load(records)
	s.SetCategoryFilter("rust")
	v := s.SetSearchQuery("memory")

	testutil.AssertOrderedSubset(t, records, v.Rows)
	testutil.AssertAllMatch(t, v.Rows, v.Filter)
}
