package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/emrgen/prd/internal/identity"
	"github.com/emrgen/prd/internal/module"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errEmptyBody = errors.New("request body is required")

// NewHTTPHandler exposes the PRD service as a json rest api. The caller is
// taken from the bearer token of each request.
func NewHTTPHandler(svc v1.PRDServiceServer, verifier identity.Verifier) (http.Handler, error) {
	mux := runtime.NewServeMux()

	routes := []struct {
		method  string
		path    string
		handler runtime.HandlerFunc
	}{
		{http.MethodPost, "/api/prd/generate", generatePRD(svc)},
		{http.MethodPost, "/api/prd", createPRD(svc)},
		{http.MethodGet, "/api/prd", handle(svc.ListPRDs, bindListPRDs)},
		{http.MethodGet, "/api/prd/{id}", handle(svc.GetPRD, func(r *http.Request, p map[string]string, req *v1.GetPRDRequest) error {
			req.PrdId = p["id"]
			req.IncludeAuthor, req.IncludeSections, req.IncludeContent = true, true, true
			return nil
		})},
		{http.MethodPatch, "/api/prd/{id}", handle(svc.UpdatePRD, func(r *http.Request, p map[string]string, req *v1.UpdatePRDRequest) error {
			if err := decodeBody(r, req); err != nil {
				return err
			}
			req.PrdId = p["id"]
			return nil
		})},
		{http.MethodDelete, "/api/prd/{id}", handle(svc.DeletePRD, func(r *http.Request, p map[string]string, req *v1.DeletePRDRequest) error {
			req.PrdId = p["id"]
			return nil
		})},
		{http.MethodPost, "/api/prd/{id}/regenerate", handle(svc.RegeneratePRD, func(r *http.Request, p map[string]string, req *v1.RegeneratePRDRequest) error {
			req.PrdId = p["id"]
			return nil
		})},
		{http.MethodPatch, "/api/prd/{id}/sections/{sectionId}", handle(svc.UpdateSection, func(r *http.Request, p map[string]string, req *v1.UpdateSectionRequest) error {
			if err := decodeBody(r, req); err != nil {
				return err
			}
			req.PrdId, req.SectionId = p["id"], p["sectionId"]
			return nil
		})},
		{http.MethodPut, "/api/prd/{id}/sections/order", handle(svc.ReorderSections, func(r *http.Request, p map[string]string, req *v1.ReorderSectionsRequest) error {
			if err := decodeBody(r, req); err != nil {
				return err
			}
			req.PrdId = p["id"]
			return nil
		})},
		{http.MethodGet, "/api/prd/{id}/versions", handle(svc.ListVersions, func(r *http.Request, p map[string]string, req *v1.ListVersionsRequest) error {
			req.PrdId = p["id"]
			return nil
		})},
		{http.MethodPost, "/api/prd/{id}/versions", handle(svc.CreateVersion, func(r *http.Request, p map[string]string, req *v1.CreateVersionRequest) error {
			req.PrdId = p["id"]
			return nil
		})},
		{http.MethodGet, "/api/prd/{id}/versions/{version}", handle(svc.GetVersion, func(r *http.Request, p map[string]string, req *v1.GetVersionRequest) error {
			number, err := strconv.ParseInt(p["version"], 10, 32)
			if err != nil {
				return fmt.Errorf("version must be a number: %w", err)
			}
			req.PrdId, req.VersionNumber = p["id"], int32(number)
			return nil
		})},
		{http.MethodGet, "/api/prd/{id}/comments", handle(svc.ListComments, func(r *http.Request, p map[string]string, req *v1.ListCommentsRequest) error {
			req.PrdId = p["id"]
			return bindPage(r, &req.Skip, &req.Take)
		})},
		{http.MethodPost, "/api/prd/{id}/comments", handle(svc.AddComment, func(r *http.Request, p map[string]string, req *v1.AddCommentRequest) error {
			if err := decodeBody(r, req); err != nil {
				return err
			}
			req.PrdId = p["id"]
			return nil
		})},
		{http.MethodDelete, "/api/prd/{id}/comments/{commentId}", handle(svc.DeleteComment, func(r *http.Request, p map[string]string, req *v1.DeleteCommentRequest) error {
			req.PrdId, req.CommentId = p["id"], p["commentId"]
			return nil
		})},
		{http.MethodPost, "/api/users/sync", handle(svc.SyncUser, func(r *http.Request, p map[string]string, req *v1.SyncUserRequest) error {
			return decodeBody(r, req)
		})},
		{http.MethodGet, "/api/dashboard/stats", handle(svc.GetDashboardStats, func(*http.Request, map[string]string, *v1.GetDashboardStatsRequest) error {
			return nil
		})},
	}

	for _, route := range routes {
		if err := mux.HandlePath(route.method, route.path, route.handler); err != nil {
			return nil, fmt.Errorf("register %s %s: %w", route.method, route.path, err)
		}
	}

	return HTTPRequestTimeMiddleware(module.HTTPAuthMiddleware(verifier, mux)), nil
}

// generatePRD answers with the generated markdown as plain text.
func generatePRD(svc v1.PRDServiceServer) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		req := &v1.GeneratePRDRequest{}
		if err := decodeBody(r, req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := svc.GeneratePRD(r.Context(), req)
		if err != nil {
			st := status.Convert(err)
			code := runtime.HTTPStatusFromCode(st.Code())
			if st.Code() == codes.Unavailable {
				code = http.StatusBadGateway
			}
			writeError(w, code, st.Message())
			return
		}

		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, res.Markdown)
	}
}

// createPRD reports the outcome in the body; only an unreadable body is a
// transport error.
func createPRD(svc v1.PRDServiceServer) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ map[string]string) {
		req := &v1.CreatePRDRequest{}
		if err := decodeBody(r, req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := svc.CreatePRD(r.Context(), req)
		if err != nil {
			writeStatus(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

// handle adapts a unary service method to a rest route. bind fills the
// request from the path, query and body.
func handle[Req any, Resp any](call func(context.Context, *Req) (*Resp, error), bind func(*http.Request, map[string]string, *Req) error) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
		req := new(Req)
		if err := bind(r, pathParams, req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if v, ok := any(req).(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		res, err := call(r.Context(), req)
		if err != nil {
			writeStatus(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func bindListPRDs(r *http.Request, _ map[string]string, req *v1.ListPRDsRequest) error {
	query := r.URL.Query()
	for _, st := range query["status"] {
		req.Status = append(req.Status, v1.PRDStatus(st))
	}
	req.Search = query.Get("search")
	req.OrderBy = query.Get("orderBy")
	req.Direction = query.Get("direction")
	req.Nulls = query.Get("nulls")

	if raw := query.Get("isPublic"); raw != "" {
		public, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("isPublic must be a boolean: %w", err)
		}
		req.IsPublic = &public
	}

	return bindPage(r, &req.Skip, &req.Take)
}

func bindPage(r *http.Request, skip, take *int32) error {
	query := r.URL.Query()
	for name, dst := range map[string]*int32{"skip": skip, "take": take} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", name, err)
		}
		*dst = int32(n)
	}
	return nil
}

func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeStatus(w http.ResponseWriter, err error) {
	st := status.Convert(err)
	writeError(w, runtime.HTTPStatusFromCode(st.Code()), st.Message())
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("failed to write response: %v", err)
	}
}
