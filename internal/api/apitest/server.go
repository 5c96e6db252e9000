// Package apitest provides an in-memory fake of the LMS API for tests. It
// speaks the same envelope and auth contract as the real server so the
// client transport can be exercised end to end.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/PhucLe22/lms-client/internal/models"
)

// Request records one observed call.
type Request struct {
	Method string
	Path   string
	Query  string
}

// Server is a scriptable fake LMS API.
type Server struct {
	httpServer *httptest.Server

	mu sync.Mutex

	// Token, when set, is the only accepted bearer token. Requests with a
	// different (or missing) token under /api get a 401.
	Token string
	// RateLimitRemaining makes the next N requests answer 429.
	RateLimitRemaining int
	// RetryAfter is attached to 429 responses when non-empty.
	RetryAfter string
	// FailPaths maps "METHOD path" to a forced status code.
	FailPaths map[string]int

	User     models.User
	Auth     models.AuthResponse
	Courses  []models.Course
	Details  map[string]models.CourseDetail
	Progress map[string]*models.CourseProgress
	Results  map[string]models.QuizResult
	Quizzes  map[string][]models.QuizQuestion
	Tasks    map[string][]models.PracticeTask
	// Submissions holds all student submissions per task, as the admin
	// review endpoint returns them.
	Submissions map[string][]models.PracticeSubmission
	Students    []models.StudentListItem
	Stats       models.DashboardStats

	// WatchUpdates records watch-percent pushes per lesson in arrival order.
	WatchUpdates map[string][]int
	// Completed records lesson ids marked complete in arrival order.
	Completed []string

	requests []Request
}

// New starts the fake server.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		Details:      map[string]models.CourseDetail{},
		Progress:     map[string]*models.CourseProgress{},
		Results:      map[string]models.QuizResult{},
		Quizzes:      map[string][]models.QuizQuestion{},
		Tasks:        map[string][]models.PracticeTask{},
		Submissions:  map[string][]models.PracticeSubmission{},
		FailPaths:    map[string]int{},
		WatchUpdates: map[string][]int{},
	}

	r := gin.New()
	r.Use(s.record)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthReport{Status: "Healthy"})
	})
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, "Healthy")
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthReport{Status: "Healthy"})
	})

	apiGroup := r.Group("/api", s.gate)
	{
		apiGroup.POST("/auth/login", func(c *gin.Context) { s.ok(c, s.Auth) })
		apiGroup.POST("/auth/register", func(c *gin.Context) { s.ok(c, s.Auth) })
		apiGroup.GET("/auth/me", func(c *gin.Context) { s.ok(c, s.User) })
		apiGroup.POST("/auth/forgot-password", func(c *gin.Context) { s.ok(c, nil) })
		apiGroup.POST("/auth/reset-password", func(c *gin.Context) { s.ok(c, nil) })

		apiGroup.GET("/courses", s.listCourses)
		apiGroup.GET("/courses/:id", s.getCourse)
		apiGroup.POST("/courses", s.createCourse)
		apiGroup.PUT("/courses/:id", s.updateCourse)
		apiGroup.DELETE("/courses/:id", func(c *gin.Context) { s.ok(c, nil) })

		apiGroup.GET("/courses/:id/lessons", s.listLessons)
		apiGroup.POST("/courses/:id/lessons", s.createLesson)
		apiGroup.PUT("/lessons/:id", s.updateLesson)
		apiGroup.DELETE("/lessons/:id", func(c *gin.Context) { s.ok(c, nil) })
		apiGroup.POST("/lessons/:id/document", s.uploadDocument)

		apiGroup.POST("/enrollments/:courseId", func(c *gin.Context) {
			s.ok(c, models.Enrollment{CourseID: c.Param("courseId"), Status: models.EnrollmentActive})
		})
		apiGroup.DELETE("/enrollments/:courseId", func(c *gin.Context) { s.ok(c, nil) })
		apiGroup.GET("/enrollments/my-courses", func(c *gin.Context) { s.ok(c, []models.Enrollment{}) })

		apiGroup.GET("/courses/:id/progress", s.courseProgress)
		apiGroup.POST("/lessons/:id/complete", s.completeLesson)
		apiGroup.POST("/lessons/:id/uncomplete", s.uncompleteLesson)
		apiGroup.PUT("/lessons/:id/watch-progress", s.watchProgress)

		apiGroup.GET("/lessons/:id/quiz", s.lessonQuiz)
		apiGroup.GET("/lessons/:id/quiz/admin", s.lessonQuiz)
		apiGroup.POST("/lessons/:id/quiz", s.createQuiz)
		apiGroup.PUT("/quiz/:id", s.updateQuiz)
		apiGroup.DELETE("/quiz/:id", s.deleteQuiz)
		apiGroup.GET("/quiz/result/:lessonId", s.quizResult)
		apiGroup.POST("/quiz/submit/:lessonId", s.quizSubmit)

		apiGroup.GET("/lessons/:id/practice", s.lessonPractice)
		apiGroup.POST("/lessons/:id/practice", s.createPractice)
		apiGroup.PUT("/practice/:id", s.updatePractice)
		apiGroup.DELETE("/practice/:id", s.deletePractice)
		apiGroup.GET("/practice/:id/submissions", func(c *gin.Context) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.ok(c, s.Submissions[c.Param("id")])
		})
		apiGroup.POST("/practice/:id/submit", func(c *gin.Context) {
			var req struct {
				Content string `json:"content"`
			}
			_ = c.ShouldBindJSON(&req)
			s.ok(c, models.PracticeSubmission{TaskID: c.Param("id"), Content: req.Content})
		})
		apiGroup.GET("/practice/:id/my-submissions", func(c *gin.Context) { s.ok(c, []models.PracticeSubmission{}) })

		apiGroup.GET("/admin/students", s.listStudents)
		apiGroup.GET("/admin/students/:id", s.getStudent)
		apiGroup.DELETE("/admin/students/:id", func(c *gin.Context) { s.ok(c, nil) })
		apiGroup.PUT("/admin/students/:id/role", s.updateRole)

		apiGroup.GET("/dashboard", func(c *gin.Context) { s.ok(c, s.Stats) })
	}

	s.httpServer = httptest.NewServer(r)
	return s
}

// Close shuts down the fake server.
func (s *Server) Close() { s.httpServer.Close() }

// URL returns the API base URL, including the /api prefix.
func (s *Server) URL() string { return s.httpServer.URL + "/api" }

// Requests returns a snapshot of observed requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// CountRequests returns the number of observed calls matching method+path.
func (s *Server) CountRequests(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) record(c *gin.Context) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.RawQuery,
	})
	s.mu.Unlock()
	c.Next()
}

// gate enforces the scripted failure knobs and the bearer token.
func (s *Server) gate(c *gin.Context) {
	s.mu.Lock()
	if s.RateLimitRemaining > 0 {
		s.RateLimitRemaining--
		retryAfter := s.RetryAfter
		s.mu.Unlock()
		if retryAfter != "" {
			c.Header("Retry-After", retryAfter)
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "rate limit exceeded"})
		return
	}
	if status, ok := s.FailPaths[c.Request.Method+" "+c.Request.URL.Path]; ok {
		s.mu.Unlock()
		c.AbortWithStatusJSON(status, gin.H{"success": false, "message": "scripted failure"})
		return
	}
	token := s.Token
	s.mu.Unlock()

	if token != "" && c.GetHeader("Authorization") != "Bearer "+token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
		return
	}
	c.Next()
}

func (s *Server) ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (s *Server) listCourses(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	search := c.Query("search")
	level := c.Query("level")

	var items []models.Course
	for _, course := range s.Courses {
		if search != "" && !contains(course.Title, search) {
			continue
		}
		if level != "" && string(course.Level) != level {
			continue
		}
		items = append(items, course)
	}
	total := len(items)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	s.ok(c, models.Paginated[models.Course]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: (total + size - 1) / size,
	})
}

func (s *Server) getCourse(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if detail, ok := s.Details[c.Param("id")]; ok {
		s.ok(c, detail)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "course not found"})
}

func (s *Server) createCourse(c *gin.Context) {
	var req struct {
		Title       string       `json:"title"`
		Description string       `json:"description"`
		Level       models.Level `json:"level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	course := models.Course{ID: "course-" + strconv.Itoa(len(s.Courses)+1), Title: req.Title, Description: req.Description, Level: req.Level}
	s.mu.Lock()
	s.Courses = append(s.Courses, course)
	s.mu.Unlock()
	s.ok(c, course)
}

func (s *Server) updateCourse(c *gin.Context) {
	var req struct {
		Title       string       `json:"title"`
		Description string       `json:"description"`
		Level       models.Level `json:"level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Courses {
		if s.Courses[i].ID == c.Param("id") {
			s.Courses[i].Title = req.Title
			s.Courses[i].Description = req.Description
			s.Courses[i].Level = req.Level
			s.ok(c, s.Courses[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "course not found"})
}

func (s *Server) listLessons(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if detail, ok := s.Details[c.Param("id")]; ok {
		s.ok(c, detail.Lessons)
		return
	}
	s.ok(c, []models.Lesson{})
}

func (s *Server) createLesson(c *gin.Context) {
	var req struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		OrderIndex int    `json:"orderIndex"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	courseID := c.Param("id")
	detail := s.Details[courseID]
	lesson := models.Lesson{
		ID:         "lesson-" + strconv.Itoa(len(detail.Lessons)+1),
		CourseID:   courseID,
		Title:      req.Title,
		Content:    req.Content,
		OrderIndex: req.OrderIndex,
	}
	detail.Lessons = append(detail.Lessons, lesson)
	s.Details[courseID] = detail
	s.ok(c, lesson)
}

func (s *Server) uploadDocument(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "file is required"})
		return
	}
	file.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	docURL := "https://files.example.com/" + header.Filename
	for courseID, detail := range s.Details {
		for i := range detail.Lessons {
			if detail.Lessons[i].ID == id {
				detail.Lessons[i].DocumentURL = docURL
				s.Details[courseID] = detail
				s.ok(c, detail.Lessons[i])
				return
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "lesson not found"})
}

func (s *Server) updateLesson(c *gin.Context) {
	var req struct {
		Title      string `json:"title"`
		Content    string `json:"content"`
		OrderIndex int    `json:"orderIndex"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	for courseID, detail := range s.Details {
		for i := range detail.Lessons {
			if detail.Lessons[i].ID != id {
				continue
			}
			// Mirror the unique-order-index constraint so mid-reorder
			// failures can be simulated faithfully.
			for j := range detail.Lessons {
				if j != i && detail.Lessons[j].OrderIndex == req.OrderIndex {
					c.JSON(http.StatusConflict, gin.H{"success": false, "message": "order index already in use"})
					return
				}
			}
			detail.Lessons[i].Title = req.Title
			detail.Lessons[i].Content = req.Content
			detail.Lessons[i].OrderIndex = req.OrderIndex
			s.Details[courseID] = detail
			s.ok(c, detail.Lessons[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "lesson not found"})
}

func (s *Server) courseProgress(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if progress, ok := s.Progress[c.Param("id")]; ok {
		s.ok(c, progress)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "not enrolled"})
}

func (s *Server) completeLesson(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	s.Completed = append(s.Completed, id)
	for _, progress := range s.Progress {
		for i := range progress.Lessons {
			if progress.Lessons[i].LessonID == id {
				if !progress.Lessons[i].IsCompleted {
					progress.Lessons[i].IsCompleted = true
					progress.CompletedLessons++
				}
				s.ok(c, progress.Lessons[i])
				return
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "lesson not found"})
}

func (s *Server) uncompleteLesson(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	for _, progress := range s.Progress {
		for i := range progress.Lessons {
			if progress.Lessons[i].LessonID == id {
				if progress.Lessons[i].IsCompleted {
					progress.Lessons[i].IsCompleted = false
					progress.CompletedLessons--
				}
				s.ok(c, progress.Lessons[i])
				return
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "lesson not found"})
}

func (s *Server) watchProgress(c *gin.Context) {
	var req struct {
		WatchPercent int `json:"watchPercent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	s.WatchUpdates[id] = append(s.WatchUpdates[id], req.WatchPercent)
	s.ok(c, models.LessonProgress{LessonID: id, WatchPercent: req.WatchPercent})
}

func (s *Server) lessonQuiz(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ok(c, s.Quizzes[c.Param("id")])
}

func (s *Server) quizResult(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result, ok := s.Results[c.Param("lessonId")]; ok {
		s.ok(c, result)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "no result"})
}

func (s *Server) quizSubmit(c *gin.Context) {
	var req struct {
		Answers []struct {
			QuestionID     string `json:"questionId"`
			SelectedAnswer string `json:"selectedAnswer"`
		} `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lessonID := c.Param("lessonId")
	questions := s.Quizzes[lessonID]
	correct := 0
	for _, q := range questions {
		for _, a := range req.Answers {
			if a.QuestionID == q.ID && a.SelectedAnswer == q.CorrectAnswer {
				correct++
			}
		}
	}
	result := models.QuizResult{
		LessonID:       lessonID,
		CorrectCount:   correct,
		TotalQuestions: len(questions),
	}
	if len(questions) > 0 {
		result.Score = float64(correct) / float64(len(questions)) * 100
	}
	s.Results[lessonID] = result
	s.ok(c, result)
}

type quizPayload struct {
	Question      string `json:"question"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer"`
}

func (s *Server) createQuiz(c *gin.Context) {
	var req quizPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lessonID := c.Param("id")
	question := models.QuizQuestion{
		ID:       "quiz-" + strconv.Itoa(len(s.Quizzes[lessonID])+1),
		LessonID: lessonID,
		Question: req.Question,
		OptionA:  req.OptionA, OptionB: req.OptionB,
		OptionC: req.OptionC, OptionD: req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
	}
	s.Quizzes[lessonID] = append(s.Quizzes[lessonID], question)
	s.ok(c, question)
}

func (s *Server) updateQuiz(c *gin.Context) {
	var req quizPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	for lessonID, questions := range s.Quizzes {
		for i := range questions {
			if questions[i].ID != id {
				continue
			}
			questions[i].Question = req.Question
			questions[i].OptionA = req.OptionA
			questions[i].OptionB = req.OptionB
			questions[i].OptionC = req.OptionC
			questions[i].OptionD = req.OptionD
			questions[i].CorrectAnswer = req.CorrectAnswer
			s.Quizzes[lessonID] = questions
			s.ok(c, questions[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "question not found"})
}

func (s *Server) deleteQuiz(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	for lessonID, questions := range s.Quizzes {
		for i := range questions {
			if questions[i].ID == id {
				s.Quizzes[lessonID] = append(questions[:i], questions[i+1:]...)
				s.ok(c, nil)
				return
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "question not found"})
}

type practicePayload struct {
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	SubmissionType models.SubmissionType `json:"submissionType"`
}

func (s *Server) createPractice(c *gin.Context) {
	var req practicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lessonID := c.Param("id")
	task := models.PracticeTask{
		ID:             "task-" + strconv.Itoa(len(s.Tasks[lessonID])+1),
		LessonID:       lessonID,
		Title:          req.Title,
		Description:    req.Description,
		SubmissionType: req.SubmissionType,
	}
	s.Tasks[lessonID] = append(s.Tasks[lessonID], task)
	s.ok(c, task)
}

func (s *Server) updatePractice(c *gin.Context) {
	var req practicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	for lessonID, tasks := range s.Tasks {
		for i := range tasks {
			if tasks[i].ID != id {
				continue
			}
			tasks[i].Title = req.Title
			tasks[i].Description = req.Description
			tasks[i].SubmissionType = req.SubmissionType
			s.Tasks[lessonID] = tasks
			s.ok(c, tasks[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "task not found"})
}

func (s *Server) deletePractice(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	for lessonID, tasks := range s.Tasks {
		for i := range tasks {
			if tasks[i].ID == id {
				s.Tasks[lessonID] = append(tasks[:i], tasks[i+1:]...)
				s.ok(c, nil)
				return
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "task not found"})
}

func (s *Server) lessonPractice(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ok(c, s.Tasks[c.Param("id")])
}

func (s *Server) listStudents(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	search := c.Query("search")
	role := c.Query("role")

	var items []models.StudentListItem
	for _, st := range s.Students {
		if search != "" && !contains(st.FullName, search) && !contains(st.Email, search) {
			continue
		}
		if role != "" && string(st.Role) != role {
			continue
		}
		items = append(items, st)
	}
	total := len(items)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	s.ok(c, models.Paginated[models.StudentListItem]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: (total + size - 1) / size,
	})
}

func (s *Server) getStudent(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.Students {
		if st.ID == c.Param("id") {
			s.ok(c, models.StudentDetail{ID: st.ID, FullName: st.FullName, Email: st.Email, Role: st.Role})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "student not found"})
}

func (s *Server) updateRole(c *gin.Context) {
	var req struct {
		Role models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Students {
		if s.Students[i].ID == c.Param("id") {
			s.Students[i].Role = req.Role
			s.ok(c, s.Students[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "student not found"})
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
