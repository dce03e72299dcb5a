package models

import "testing"

func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{
			name: "with username",
			user: User{Username: "alice", FirstName: "Alice"},
			want: "@alice",
		},
		{
			name: "without username",
			user: User{FirstName: "Bob"},
			want: "Bob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserBeforeSave(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{
			name:    "valid user",
			user:    User{TelegramID: 123, FirstName: "Alice"},
			wantErr: false,
		},
		{
			name:    "missing telegram id",
			user:    User{FirstName: "Alice"},
			wantErr: true,
		},
		{
			name:    "missing first name",
			user:    User{TelegramID: 123},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.BeforeSave(nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("BeforeSave() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
