package pulumi_aws

import "testing"

func TestBucketNames_Deterministic(t *testing.T) {
	a := SiteBucketName("static-site", "123456789012", "eu-west-1")
	b := SiteBucketName("static-site", "123456789012", "eu-west-1")

	if a != b {
		t.Fatalf("expected stable name, got %q and %q", a, b)
	}
	if a != "static-site-123456789012-eu-west-1" {
		t.Errorf("site bucket: got %q", a)
	}

	if got := LogBucketName("static-site", "123456789012", "eu-west-1"); got != "static-site-logs-123456789012-eu-west-1" {
		t.Errorf("log bucket: got %q", got)
	}
	if got := ArtifactBucketName("static-site", "123456789012", "eu-west-1"); got != "static-site-artifacts-123456789012-eu-west-1" {
		t.Errorf("artifact bucket: got %q", got)
	}
}
