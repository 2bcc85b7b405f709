package apitest

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"console/internal/resources"

	"github.com/gin-gonic/gin"
)

func (s *Server) seed() {
	for i := 1; i <= 45; i++ {
		status := resources.ContractActive
		switch i % 4 {
		case 1:
			status = resources.ContractDraft
		case 2:
			status = resources.ContractExpired
		}
		s.contracts = append(s.contracts, resources.Contract{
			ID:         fmt.Sprintf("ctr-%03d", i),
			Name:       fmt.Sprintf("Kontrak Armada %03d", i),
			AccountID:  fmt.Sprintf("acc-%02d", (i%5)+1),
			Status:     status,
			TotalValue: int64(i) * 250000,
		})
	}
	for i := 1; i <= 5; i++ {
		s.accounts = append(s.accounts, resources.Account{
			ID:   fmt.Sprintf("acc-%02d", i),
			Name: fmt.Sprintf("PT Mitra Logistik %02d", i),
		})
	}
	for i := 1; i <= 12; i++ {
		status := resources.DriverAvailable
		if i%3 == 0 {
			status = resources.DriverOnTrip
		}
		s.drivers = append(s.drivers, resources.Driver{
			ID:        fmt.Sprintf("drv-%02d", i),
			Name:      fmt.Sprintf("Sopir %02d", i),
			LicenseNo: fmt.Sprintf("SIM-%05d", i*17),
			Status:    status,
		})
	}
	for i := 1; i <= 4; i++ {
		km := i * 35000
		s.vehicles = append(s.vehicles, resources.Vehicle{
			ID:          fmt.Sprintf("veh-%02d", i),
			VehicleCode: fmt.Sprintf("TRK-%02d", i),
			PlateNumber: fmt.Sprintf("B %d%d%d%d XYZ", i, i, i, i),
			Kilometers:  &km,
		})
	}
	statuses := resources.TaskColumns
	for i := 1; i <= 8; i++ {
		s.tasks = append(s.tasks, resources.Task{
			ID:       fmt.Sprintf("tsk-%02d", i),
			Title:    fmt.Sprintf("Pekerjaan %02d", i),
			Status:   statuses[i%len(statuses)],
			Assignee: fmt.Sprintf("user-%d", (i%3)+1),
		})
	}
	s.decisions = []dispatchDecision{
		{ID: "dec-01", Summary: "Alihkan TRK-01 ke rute utara", VehicleID: "veh-01", Confidence: 0.92, Status: "PENDING"},
		{ID: "dec-02", Summary: "Jadwalkan servis TRK-03", VehicleID: "veh-03", Confidence: 0.71, Status: "PENDING"},
	}
}

// Contracts

func (s *Server) listContracts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := parseListParams(c)
	out := make([]resources.Contract, 0, len(s.contracts))
	for _, ctr := range s.contracts {
		if !matches(p.Search, ctr.Name, ctr.ID) {
			continue
		}
		if p.Status != "" && ctr.Status != p.Status {
			continue
		}
		out = append(out, ctr)
	}
	desc := p.SortOrder == "desc"
	switch p.SortBy {
	case "name":
		sortBy(out, func(x resources.Contract) string { return x.Name }, desc)
	case "status":
		sortBy(out, func(x resources.Contract) string { return x.Status }, desc)
	case "total_value":
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].TotalValue > out[j].TotalValue
			}
			return out[i].TotalValue < out[j].TotalValue
		})
	}
	envelope(c, out, p)
}

func (s *Server) createContract(c *gin.Context) {
	var in resources.Contract
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "payload tidak valid"})
		return
	}
	if in.Name == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "nama kontrak wajib diisi"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	in.ID = s.nextID("ctr")
	if in.Status == "" {
		in.Status = resources.ContractDraft
	}
	s.contracts = append(s.contracts, in)
	c.JSON(http.StatusCreated, in)
}

func (s *Server) updateContract(c *gin.Context) {
	var in resources.Contract
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "payload tidak valid"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.contracts {
		if s.contracts[i].ID == c.Param("id") {
			in.ID = s.contracts[i].ID
			s.contracts[i] = in
			c.JSON(http.StatusOK, in)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "kontrak tidak ditemukan"})
}

func (s *Server) deleteContract(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.contracts {
		if s.contracts[i].ID == c.Param("id") {
			s.contracts = append(s.contracts[:i], s.contracts[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "kontrak tidak ditemukan"})
}

// Accounts

func (s *Server) listAccounts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	envelope(c, s.accounts, parseListParams(c))
}

// Drivers

func (s *Server) listDrivers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := parseListParams(c)
	out := make([]resources.Driver, 0, len(s.drivers))
	for _, d := range s.drivers {
		if !matches(p.Search, d.Name, d.LicenseNo) {
			continue
		}
		if p.Status != "" && d.Status != p.Status {
			continue
		}
		out = append(out, d)
	}
	if p.SortBy == "name" {
		sortBy(out, func(x resources.Driver) string { return x.Name }, p.SortOrder == "desc")
	}
	envelope(c, out, p)
}

func (s *Server) createDriver(c *gin.Context) {
	var in resources.Driver
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "payload tidak valid"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.drivers {
		if d.LicenseNo != "" && d.LicenseNo == in.LicenseNo {
			c.JSON(http.StatusConflict, gin.H{"detail": "nomor SIM sudah terdaftar"})
			return
		}
	}
	in.ID = s.nextID("drv")
	if in.Status == "" {
		in.Status = resources.DriverAvailable
	}
	s.drivers = append(s.drivers, in)
	c.JSON(http.StatusCreated, in)
}

func (s *Server) updateDriver(c *gin.Context) {
	var in resources.Driver
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "payload tidak valid"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.drivers {
		if s.drivers[i].ID == c.Param("id") {
			in.ID = s.drivers[i].ID
			s.drivers[i] = in
			c.JSON(http.StatusOK, in)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "sopir tidak ditemukan"})
}

func (s *Server) deleteDriver(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.drivers {
		if s.drivers[i].ID == c.Param("id") {
			s.drivers = append(s.drivers[:i], s.drivers[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "sopir tidak ditemukan"})
}

// Vehicles (legacy, no envelope)

func (s *Server) listVehiclesLegacy(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.vehicles)
}

// Tasks

func (s *Server) listTasks(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := parseListParams(c)
	p.PageSize = 100
	envelope(c, s.tasks, p)
}

func (s *Server) patchTask(c *gin.Context) {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "payload tidak valid"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == c.Param("id") {
			s.tasks[i].Status = in.Status
			c.JSON(http.StatusOK, s.tasks[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "pekerjaan tidak ditemukan"})
}

// Dispatch

func (s *Server) dispatchDashboard(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"vehicles":     s.vehicles,
		"alerts":       []gin.H{{"id": "alr-01", "level": "WARN", "message": "TRK-02 melewati batas kecepatan"}},
		"ai_decisions": s.decisions,
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) decide(status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.decisions {
			if s.decisions[i].ID == c.Param("id") {
				if s.decisions[i].Status != "PENDING" {
					c.JSON(http.StatusConflict, gin.H{"detail": "keputusan sudah diproses"})
					return
				}
				s.decisions[i].Status = status
				c.JSON(http.StatusOK, s.decisions[i])
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"detail": "keputusan tidak ditemukan"})
	}
}
