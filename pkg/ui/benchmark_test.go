package ui

import (
	"fmt"
	"testing"

	"github.com/vanderheijden86/devquest/pkg/catalog"
	"github.com/vanderheijden86/devquest/pkg/testutil"
)

func BenchmarkStoreChanged(b *testing.B) {
	for _, size := range []int{100, 1000, 5000} {
		b.Run(fmt.Sprintf("tutorials=%d", size), func(b *testing.B) {
			store := catalog.NewStore(catalog.ThemeDark)
			store.Load(testutil.QuickRecords(size))
			m := NewModel(Options{Store: store})
			v := store.Render()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tm, _ := m.Update(StoreChangedMsg{View: v})
				m = tm.(Model)
			}
		})
	}
}

func BenchmarkView(b *testing.B) {
	store := catalog.NewStore(catalog.ThemeDark)
	store.Load(testutil.QuickRecords(1000))
	m := NewModel(Options{Store: store})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.View()
	}
}
