package stringsx

import "testing"

func TestContainsAny(t *testing.T) {
	testCases := []struct {
		name     string
		s        string
		substrs  []string
		expected bool
	}{
		{
			name:     "Marker in the middle",
			s:        "RealService__Proxy",
			substrs:  []string{"__"},
			expected: true,
		},
		{
			name:     "No marker",
			s:        "RealService",
			substrs:  []string{"__", "$$"},
			expected: false,
		},
		{
			name:     "Second marker matches",
			s:        "Account$$EnhancerByCGLIB",
			substrs:  []string{"__", "$$"},
			expected: true,
		},
		{
			name:     "Empty markers are ignored",
			s:        "RealService",
			substrs:  []string{""},
			expected: false,
		},
		{
			name:     "No markers",
			s:        "RealService",
			substrs:  nil,
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if result := ContainsAny(tc.s, tc.substrs...); result != tc.expected {
				t.Errorf("Failed %s: expected %v, got %v", tc.name, tc.expected, result)
			}
		})
	}
}
