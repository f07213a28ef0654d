package sms

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudSMSClient_Send(t *testing.T) {
	var got cloudSMSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k-123", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewCloudSMSClient(srv.URL+"/sms/", "k-123")
	require.NoError(t, c.Send(context.Background(), "01700000000", "hello"))
	assert.Equal(t, cloudSMSRequest{Message: "hello", Recipient: "01700000000"}, got)
}

func TestCloudSMSClient_Non201IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"error":"quota"}`)
	}))
	defer srv.Close()

	err := NewCloudSMSClient(srv.URL, "k").Send(context.Background(), "0170", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "200")
}

func TestBulkSMSClient_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "key", r.PostForm.Get("api_key"))
		assert.Equal(t, "8809617613088", r.PostForm.Get("senderid"))
		assert.Equal(t, "01800000000", r.PostForm.Get("number"))
		assert.Equal(t, "msg", r.PostForm.Get("message"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewBulkSMSClient(srv.URL, "key", "8809617613088")
	assert.NoError(t, c.Send(context.Background(), "01800000000", "msg"))
}

func TestRenderer(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	out, err := r.Render("fabricator_status", map[string]string{
		"Name": "Karim", "RegistrationNumber": "FAB-1", "Status": "approved",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dear Karim, your registration FAB-1 is now approved.", out)

	out, err = r.Render("task_assigned", map[string]string{"Description": "Call dealer"})
	require.NoError(t, err)
	assert.Equal(t, "New task: Call dealer", out)

	assert.False(t, r.Has("rep_credentials"))
	_, err = r.Render("rep_credentials", nil)
	assert.Error(t, err)
}
