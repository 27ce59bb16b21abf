package middleware

import "testing"

func TestParseRouteInfo(t *testing.T) {
	tests := []struct {
		fullPath   string
		method     string
		wantModule string
		wantAction string
	}{
		{"/api/boards", "POST", "boards", "Create"},
		{"/api/boards/:id", "DELETE", "boards", "Delete"},
		{"/api/boards/:id/lists", "POST", "lists", "Create"},
		{"/api/auth/register", "POST", "register", "Create"},
	}

	for _, tt := range tests {
		module, action := parseRouteInfo(tt.fullPath, tt.method)
		if module != tt.wantModule {
			t.Errorf("parseRouteInfo(%q, %q) module = %q, expected %q", tt.fullPath, tt.method, module, tt.wantModule)
		}
		if action != tt.wantAction {
			t.Errorf("parseRouteInfo(%q, %q) action = %q, expected %q", tt.fullPath, tt.method, action, tt.wantAction)
		}
	}
}

func TestMaskPasswordFields(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "password masked",
			body:     `{"email":"a@x.com","password":"hunter2"}`,
			expected: `{"email":"a@x.com","password":"***"}`,
		},
		{
			name:     "no password untouched",
			body:     `{"name":"Sprint"}`,
			expected: `{"name":"Sprint"}`,
		},
		{
			name:     "spaced value masked",
			body:     `{"password": "hunter2"}`,
			expected: `{"password": "***"}`,
		},
		{
			name:     "non-string value untouched",
			body:     `{"password": 12345}`,
			expected: `{"password": 12345}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskPasswordFields(tt.body); got != tt.expected {
				t.Errorf("maskPasswordFields(%q) = %q, expected %q", tt.body, got, tt.expected)
			}
		})
	}
}
