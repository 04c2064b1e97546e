package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"sellerops/internal/domain"
	"sellerops/internal/repository"
	"sellerops/internal/service"
)

const sessionCookieName = "session_token"

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.AuthenticateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if user == nil {
		h.audit(r, nil, "登录失败", "认证",
			fmt.Sprintf("用户名: %s", strings.TrimSpace(req.Username)),
			domain.LogTypeSecurity, domain.LevelWarning)
		writeError(w, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	session, err := h.svc.CreateSession(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.audit(r, user, "登录成功", "认证",
		fmt.Sprintf("用户名: %s", displayName(user)),
		domain.LogTypeSecurity, domain.LevelInfo)
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := h.svc.DeleteSession(r.Context(), cookie.Value); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]any{"logged_out": true})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": users, "count": len(users)})
}

type createUserRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	ChineseName *string `json:"chinese_name"`
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, err := h.svc.CreateUser(r.Context(), req.Username, req.Password, req.ChineseName)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			writeError(w, http.StatusConflict, "username already exists")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.audit(r, currentUser(r), "创建用户", "用户管理",
		fmt.Sprintf("目标用户: %s", displayName(user)),
		domain.LogTypeUser, domain.LevelInfo)
	writeJSON(w, http.StatusCreated, user)
}

type updatePasswordRequest struct {
	Password string `json:"password"`
}

func (h *Handler) UpdateUserPassword(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(urlParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req updatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.UpdateUserPassword(r.Context(), id, req.Password); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.audit(r, currentUser(r), "修改用户密码", "用户管理",
		fmt.Sprintf("用户ID: %d", id), domain.LogTypeUser, domain.LevelInfo)
	writeJSON(w, http.StatusOK, map[string]any{"updated": true})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(urlParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.audit(r, currentUser(r), "删除用户", "用户管理",
		fmt.Sprintf("用户ID: %d", id), domain.LogTypeUser, domain.LevelInfo)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListShops(w http.ResponseWriter, r *http.Request) {
	shopType := r.URL.Query().Get("shop_type")
	shops, err := h.svc.ListShops(r.Context(), shopType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": shops, "count": len(shops)})
}

type createShopRequest struct {
	ShopName  string  `json:"shop_name"`
	BrandName *string `json:"brand_name"`
	ShopURL   string  `json:"shop_url"`
	Operator  *string `json:"operator"`
	ShopType  string  `json:"shop_type"`
}

func (h *Handler) CreateShop(w http.ResponseWriter, r *http.Request) {
	var req createShopRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var createdBy *string
	if user := currentUser(r); user != nil {
		createdBy = &user.Username
	}
	shop, err := h.svc.CreateShop(r.Context(), repository.ShopCreateInput{
		ShopName:  req.ShopName,
		BrandName: req.BrandName,
		ShopURL:   req.ShopURL,
		Operator:  req.Operator,
		ShopType:  req.ShopType,
		CreatedBy: createdBy,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			writeError(w, http.StatusConflict, "shop name already exists")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.audit(r, currentUser(r), "创建店铺", "店铺管理",
		fmt.Sprintf("店铺: %s", shop.ShopName), domain.LogTypeUser, domain.LevelInfo)
	writeJSON(w, http.StatusCreated, shop)
}

func (h *Handler) GetShop(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(urlParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	shop, err := h.svc.GetShop(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "shop not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, shop)
}

type patchShopRequest struct {
	ShopName  *string `json:"shop_name"`
	BrandName *string `json:"brand_name"`
	ShopURL   *string `json:"shop_url"`
	Operator  *string `json:"operator"`
	ShopType  *string `json:"shop_type"`
}

func (h *Handler) PatchShop(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(urlParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req patchShopRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	shop, err := h.svc.PatchShop(r.Context(), id, repository.ShopPatchInput{
		ShopName:  req.ShopName,
		BrandName: req.BrandName,
		ShopURL:   req.ShopURL,
		Operator:  req.Operator,
		ShopType:  req.ShopType,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "shop not found")
			return
		}
		if errors.Is(err, repository.ErrConflict) {
			writeError(w, http.StatusConflict, "shop name already exists")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.audit(r, currentUser(r), "修改店铺", "店铺管理",
		fmt.Sprintf("店铺: %s", shop.ShopName), domain.LogTypeUser, domain.LevelInfo)
	writeJSON(w, http.StatusOK, shop)
}

func (h *Handler) DeleteShop(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(urlParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.DeleteShop(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "shop not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.audit(r, currentUser(r), "删除店铺", "店铺管理",
		fmt.Sprintf("店铺ID: %d", id), domain.LogTypeUser, domain.LevelInfo)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := parseOptionalInt(query.Get("limit"), 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := parseOptionalInt(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries, err := h.svc.ListAudit(r.Context(), limit, offset, query.Get("search"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": entries, "count": len(entries)})
}

func (h *Handler) CountAudit(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.CountAudit(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": count})
}

func (h *Handler) GenerateMonthlyReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	projectName := strings.TrimSpace(r.FormValue("project_name"))
	reportDate := strings.TrimSpace(r.FormValue("report_date"))
	if projectName == "" || reportDate == "" {
		writeError(w, http.StatusBadRequest, "project_name and report_date are required")
		return
	}

	file, header, err := r.FormFile("payment_range_report")
	if err != nil {
		writeError(w, http.StatusBadRequest, "payment_range_report file is required")
		return
	}
	defer file.Close()
	if !strings.EqualFold(fileExtension(header.Filename), "csv") {
		writeError(w, http.StatusBadRequest, "payment_range_report must be a .csv file")
		return
	}

	result, err := h.svc.GenerateMonthlyReport(projectName, reportDate, file)
	if err != nil {
		h.audit(r, currentUser(r), "生成月报失败", "月报功能",
			fmt.Sprintf("项目: %s, 日期: %s, 错误: %v", projectName, reportDate, err),
			domain.LogTypeUser, domain.LevelError)
		if errors.Is(err, service.ErrStorage) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.audit(r, currentUser(r), "生成月报", "月报功能",
		fmt.Sprintf("项目: %s, 日期: %s, 文件: %s", projectName, reportDate, result.Filename),
		domain.LogTypeUser, domain.LevelInfo)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename*=UTF-8''%s`, urlEscape(result.Filename)))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Content)
}

// audit records the request actor, client address and user agent alongside
// the action. Best effort only, failures never surface here.
func (h *Handler) audit(r *http.Request, user *domain.User, action, resource, details, logType, level string) {
	input := repository.AuditInsertInput{
		Action:  action,
		LogType: logType,
		Level:   level,
	}
	if resource != "" {
		input.Resource = &resource
	}
	if details != "" {
		input.Details = &details
	}
	if user != nil {
		input.UserID = &user.ID
		name := displayName(user)
		input.Username = &name
	}
	if addr := r.RemoteAddr; addr != "" {
		input.IPAddress = &addr
	}
	if agent := r.UserAgent(); agent != "" {
		input.UserAgent = &agent
	}
	h.svc.RecordAudit(r.Context(), input)
}

// displayName appends the Chinese name when present, matching the audit
// trail convention of the admin screens.
func displayName(user *domain.User) string {
	if user.ChineseName != nil && *user.ChineseName != "" {
		return fmt.Sprintf("%s(%s)", user.Username, *user.ChineseName)
	}
	return user.Username
}

func fileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return filename[idx+1:]
}
